package session

import (
	"context"
	"sync"
	"time"

	"github.com/m04kA/SMC-RescheduleService/internal/domain"
)

// MemoryRepository хранилище сессий в памяти процесса.
// Сессии хранятся сериализованными, чтобы вызывающий код не мог изменить их в обход Update.
type MemoryRepository struct {
	mu       sync.Mutex
	sessions map[string][]byte
	expires  map[string]time.Time
	clock    TimeProvider
}

// NewMemoryRepository создает новое хранилище в памяти
func NewMemoryRepository(clock TimeProvider) *MemoryRepository {
	if clock == nil {
		clock = realTimeProvider{}
	}
	return &MemoryRepository{
		sessions: make(map[string][]byte),
		expires:  make(map[string]time.Time),
		clock:    clock,
	}
}

// Create сохраняет новую сессию
func (r *MemoryRepository) Create(_ context.Context, s *domain.Session) error {
	data, err := encode(s)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.live(s.ID); ok {
		return ErrSessionExists
	}
	r.sessions[s.ID] = data
	r.expires[s.ID] = s.ExpiresAt
	return nil
}

// Get получает сессию по id
func (r *MemoryRepository) Get(_ context.Context, id string) (*domain.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, ok := r.live(id)
	if !ok {
		return nil, ErrSessionNotFound
	}
	return decode(data)
}

// Update применяет fn к сессии под блокировкой
func (r *MemoryRepository) Update(_ context.Context, id string, fn func(*domain.Session) error) (*domain.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, ok := r.live(id)
	if !ok {
		return nil, ErrSessionNotFound
	}

	s, err := decode(data)
	if err != nil {
		return nil, err
	}
	if err := fn(s); err != nil {
		return nil, err
	}

	updated, err := encode(s)
	if err != nil {
		return nil, err
	}
	r.sessions[id] = updated
	r.expires[id] = s.ExpiresAt
	return s, nil
}

// Delete удаляет сессию
func (r *MemoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.live(id); !ok {
		return ErrSessionNotFound
	}
	r.remove(id)
	return nil
}

// PurgeExpired удаляет истекшие сессии и возвращает их количество
func (r *MemoryRepository) PurgeExpired(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.clock.Now()
	var purged int64
	for id, expiresAt := range r.expires {
		if isExpired(expiresAt, now) {
			r.remove(id)
			purged++
		}
	}
	return purged, nil
}

// CountActive возвращает число неистекших сессий
func (r *MemoryRepository) CountActive(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.clock.Now()
	var active int64
	for _, expiresAt := range r.expires {
		if !isExpired(expiresAt, now) {
			active++
		}
	}
	return active, nil
}

// live возвращает данные неистекшей сессии; вызывается под блокировкой
func (r *MemoryRepository) live(id string) ([]byte, bool) {
	data, ok := r.sessions[id]
	if !ok {
		return nil, false
	}
	if isExpired(r.expires[id], r.clock.Now()) {
		r.remove(id)
		return nil, false
	}
	return data, true
}

func (r *MemoryRepository) remove(id string) {
	delete(r.sessions, id)
	delete(r.expires, id)
}

func isExpired(expiresAt, now time.Time) bool {
	return !expiresAt.IsZero() && now.After(expiresAt)
}
