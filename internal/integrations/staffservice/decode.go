package staffservice

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/m04kA/SMC-RescheduleService/internal/domain"
	"github.com/m04kA/SMC-RescheduleService/pkg/types"
)

// decodeAvailability читает объект {"09:00": [1, 2], ...} с сохранением порядка ключей.
// Пустое тело и null дают пустую доступность.
func decodeAvailability(r io.Reader) (domain.StaffAvailability, error) {
	var availability domain.StaffAvailability

	dec := json.NewDecoder(r)
	tok, err := dec.Token()
	if errors.Is(err, io.EOF) {
		return availability, nil
	}
	if err != nil {
		return availability, err
	}
	if tok == nil {
		return availability, nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return availability, fmt.Errorf("expected JSON object, got %v", tok)
	}

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return availability, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return availability, fmt.Errorf("unexpected key token %v", keyTok)
		}

		var staffIDs []int64
		if err := dec.Decode(&staffIDs); err != nil {
			return availability, fmt.Errorf("time %q: %w", key, err)
		}
		availability.Put(types.TimeString(key), staffIDs)
	}

	if _, err := dec.Token(); err != nil {
		return availability, err
	}

	return availability, nil
}
