package staffservice

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/m04kA/SMC-RescheduleService/internal/domain"
	"github.com/m04kA/SMC-RescheduleService/pkg/authctx"
)

const (
	targetName = "staffservice"

	opRoster       = "roster"
	opAvailability = "availability"

	maxErrorBody = 512
)

// Client клиент для API персонала салона
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
	metrics    Metrics
	log        Logger
}

// NewClient создает новый экземпляр клиента.
// tokens может быть nil: тогда используется только токен из контекста запроса.
func NewClient(baseURL string, timeout time.Duration, tokens TokenSource, metrics Metrics, log Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		tokens:  tokens,
		metrics: metrics,
		log:     log,
	}
}

// FetchRoster получает состав персонала магазина.
// GET /staff/?isOnlyActive={bool}
func (c *Client) FetchRoster(ctx context.Context, activeOnly bool) (staff []domain.Staff, err error) {
	started := time.Now()
	defer func() { c.observe(opRoster, err, started) }()

	query := url.Values{}
	query.Set("isOnlyActive", strconv.FormatBool(activeOnly))

	resp, err := c.get(ctx, "/staff/", query)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	var payload []Staff
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: %w: failed to decode roster: %v", ErrAvailabilityFetch, ErrInvalidResponse, err)
	}

	staff = make([]domain.Staff, 0, len(payload))
	for _, item := range payload {
		s, err := item.ToDomain()
		if err != nil {
			// Одна некорректная запись не должна ломать весь список
			c.log.Warn("FetchRoster: skipping staff entry: %v", err)
			continue
		}
		staff = append(staff, s)
	}

	c.log.Info("FetchRoster: fetched %d staff (activeOnly=%t)", len(staff), activeOnly)
	return staff, nil
}

// FetchAvailability получает доступность сотрудника (или всего персонала для "любого мастера") на дату.
// GET /staff/allStaffAvailability?staffId={id}&date={DD/MM/YYYY}
func (c *Client) FetchAvailability(ctx context.Context, selection domain.StaffSelection, date time.Time) (availability domain.StaffAvailability, err error) {
	started := time.Now()
	defer func() { c.observe(opAvailability, err, started) }()

	if !selection.IsValid() {
		return domain.StaffAvailability{}, fmt.Errorf("%w: invalid staff selection %s", ErrInternal, selection)
	}

	query := url.Values{}
	query.Set("staffId", strconv.FormatInt(selection.QueryID(), 10))
	query.Set("date", date.Format(domain.DateFormat))

	resp, err := c.get(ctx, "/staff/allStaffAvailability", query)
	if err != nil {
		return domain.StaffAvailability{}, err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return domain.StaffAvailability{}, err
	}

	availability, err = decodeAvailability(resp.Body)
	if err != nil {
		return domain.StaffAvailability{}, fmt.Errorf("%w: %w: failed to decode availability: %v", ErrAvailabilityFetch, ErrInvalidResponse, err)
	}

	c.log.Info("FetchAvailability: staff=%s date=%s entries=%d",
		selection, date.Format(domain.DateFormat), availability.Len())
	return availability, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values) (*http.Response, error) {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w: failed to create request: %v", ErrAvailabilityFetch, ErrInternal, err)
	}
	req.Header.Set("Accept", "application/json")

	token, err := c.bearerToken(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w: failed to obtain token: %v", ErrAvailabilityFetch, ErrUnauthorized, err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrAvailabilityFetch, err)
	}
	return resp, nil
}

// bearerToken берет токен вызывающей стороны, а при его отсутствии обращается к TokenSource
func (c *Client) bearerToken(ctx context.Context) (string, error) {
	if token, ok := authctx.BearerToken(ctx); ok {
		return token, nil
	}
	if c.tokens == nil {
		return "", nil
	}
	return c.tokens.Token(ctx)
}

func (c *Client) observe(operation string, err error, started time.Time) {
	if c.metrics == nil {
		return
	}
	c.metrics.ObserveIntegration(targetName, operation, err, time.Since(started))
}

func checkStatus(resp *http.Response) error {
	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("%w: %w: status %d", ErrAvailabilityFetch, ErrUnauthorized, resp.StatusCode)
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return fmt.Errorf("%w: %w: unexpected status code %d: %s",
			ErrAvailabilityFetch, ErrInvalidResponse, resp.StatusCode, strings.TrimSpace(string(body)))
	}
}
