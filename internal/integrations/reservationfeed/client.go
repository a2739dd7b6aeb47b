package reservationfeed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/singleflight"

	"github.com/m04kA/GameRoom-ReservationService/internal/domain"
)

const (
	endpointReservations = "reservations"
	endpointStatus       = "status"

	maxBodySize = 4 << 20

	// retryWaitBudget запас на паузы между повторами
	retryWaitBudget = 5 * time.Second
)

// naiveLayouts форматы времени фида без смещения; интерпретируются в зоне зала
var naiveLayouts = []string{"2006-01-02T15:04:05", "2006-01-02T15:04", "2006-01-02 15:04:05"}

// Client клиент внешней системы учёта: расписание броней и живые статусы ПК
type Client struct {
	reservationsURL string
	statusURL       string
	httpClient      *http.Client
	maxRetries      uint
	fetchBudget     time.Duration
	loc             *time.Location
	cache           Cache
	metrics         MetricsRecorder
	log             Logger
	tracer          trace.Tracer
	group           singleflight.Group
}

// Options параметры клиента
type Options struct {
	ReservationsURL string
	StatusURL       string
	Timeout         time.Duration
	MaxRetries      uint
	Location        *time.Location
}

// NewClient создает клиент; cache и metrics могут быть nil
func NewClient(opts Options, cache Cache, metrics MetricsRecorder, log Logger) *Client {
	return &Client{
		reservationsURL: strings.TrimRight(opts.ReservationsURL, "/"),
		statusURL:       opts.StatusURL,
		httpClient: &http.Client{
			Timeout: opts.Timeout,
		},
		maxRetries:  opts.MaxRetries,
		fetchBudget: opts.Timeout*time.Duration(opts.MaxRetries+1) + retryWaitBudget,
		loc:         opts.Location,
		cache:       cache,
		metrics:     metrics,
		log:         log,
		tracer:      otel.Tracer("reservationfeed"),
	}
}

// GetReservations получает брони системы учёта на календарную дату
// Одновременные запросы одной даты объединяются, ответ кэшируется
func (c *Client) GetReservations(ctx context.Context, date time.Time) ([]domain.FeedEntry, error) {
	day := date.In(c.loc).Format(domain.DateFormat)

	ctx, span := c.tracer.Start(ctx, "reservationfeed.GetReservations", trace.WithAttributes(attribute.String("date", day)))
	defer span.End()

	body, err := c.fetchShared(ctx, endpointReservations+":"+day, endpointReservations, c.reservationsURL+"/"+day, decodes[reservationsResponse])
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "fetch reservations")
		return nil, err
	}

	var resp reservationsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: decode reservations: %v", ErrInvalidResponse, err)
	}

	entries := make([]domain.FeedEntry, 0, len(resp.Reservations))
	for _, dto := range resp.Reservations {
		start, err := c.parseTime(dto.StartTime)
		if err != nil {
			c.log.Warn("GetReservations: skip entry name=%q: bad start_time %q", dto.Name, dto.StartTime)
			continue
		}
		end, err := c.parseTime(dto.EndTime)
		if err != nil {
			c.log.Warn("GetReservations: skip entry name=%q: bad end_time %q", dto.Name, dto.EndTime)
			continue
		}
		entries = append(entries, domain.FeedEntry{
			Name:     dto.Name,
			Machines: dto.Machines,
			Start:    start,
			End:      end,
		})
	}

	span.SetAttributes(attribute.Int("entries", len(entries)))
	return entries, nil
}

// Snapshot оборачивает GetReservations: при ошибке фида возвращает недоступный снимок
func (c *Client) Snapshot(ctx context.Context, date time.Time) domain.FeedSnapshot {
	entries, err := c.GetReservations(ctx, date)
	if err != nil {
		c.log.Error("Feed unavailable, degrading to ledger-only view for date=%s: %v", date.Format(domain.DateFormat), err)
		return domain.FeedSnapshot{Available: false}
	}
	return domain.FeedSnapshot{Available: true, Entries: entries}
}

// GetStatuses живые статусы машин, отсортированные по имени
func (c *Client) GetStatuses(ctx context.Context) ([]domain.PCStatus, error) {
	ctx, span := c.tracer.Start(ctx, "reservationfeed.GetStatuses")
	defer span.End()

	body, err := c.fetchShared(ctx, endpointStatus, endpointStatus, c.statusURL, decodes[map[string]statusDTO])
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "fetch statuses")
		return nil, err
	}

	var resp map[string]statusDTO
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: decode statuses: %v", ErrInvalidResponse, err)
	}

	statuses := make([]domain.PCStatus, 0, len(resp))
	for name, dto := range resp {
		statuses = append(statuses, domain.PCStatus{
			Name:   name,
			State:  mapState(dto.State),
			Uptime: time.Duration(dto.Uptime.Hours)*time.Hour + time.Duration(dto.Uptime.Minutes)*time.Minute,
		})
	}
	sort.Slice(statuses, func(i, j int) bool { return statuses[i].Name < statuses[j].Name })

	return statuses, nil
}

// fetchShared объединяет конкурентные запросы по ключу и проверяет кэш.
// Общий запрос выполняется на контексте без отмены и ограничен fetchBudget:
// отмена одного вызывающего не обрывает запрос остальным.
// В кэш попадают только тела, которые удалось разобрать.
func (c *Client) fetchShared(ctx context.Context, key, endpoint, url string, validate func([]byte) error) ([]byte, error) {
	ch := c.group.DoChan(key, func() (interface{}, error) {
		sharedCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.fetchBudget)
		defer cancel()

		if c.cache != nil {
			data, ok, err := c.cache.Get(sharedCtx, key)
			if err != nil {
				c.log.Warn("Feed cache read failed key=%s: %v", key, err)
			}
			if ok {
				c.record(endpoint, "cache_hit")
				return data, nil
			}
		}

		data, err := c.fetchWithRetry(sharedCtx, endpoint, url)
		if err != nil {
			return nil, err
		}

		if err := validate(data); err != nil {
			c.record(endpoint, "invalid")
			return nil, fmt.Errorf("%w: decode %s: %v", ErrInvalidResponse, endpoint, err)
		}

		if c.cache != nil {
			if err := c.cache.Set(sharedCtx, key, data); err != nil {
				c.log.Warn("Feed cache write failed key=%s: %v", key, err)
			}
		}
		return data, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.([]byte), nil
	}
}

// decodes проверка, что тело разбирается в T
func decodes[T any](data []byte) error {
	var v T
	return json.Unmarshal(data, &v)
}

func (c *Client) fetchWithRetry(ctx context.Context, endpoint, url string) ([]byte, error) {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = 200 * time.Millisecond
	policy.MaxInterval = 2 * time.Second

	data, err := backoff.Retry(ctx, func() ([]byte, error) {
		return c.fetch(ctx, url)
	},
		backoff.WithBackOff(policy),
		backoff.WithMaxTries(c.maxRetries+1),
		backoff.WithNotify(func(err error, next time.Duration) {
			c.log.Warn("Feed request failed endpoint=%s, retry in %s: %v", endpoint, next, err)
		}),
	)
	if err != nil {
		c.record(endpoint, "error")
		if errors.Is(err, ErrInvalidResponse) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrUnavailable, endpoint, err)
	}

	c.record(endpoint, "ok")
	return data, nil
}

// fetch один запрос; 4xx не повторяются
func (c *Client) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, backoff.Permanent(fmt.Errorf("%w: failed to create request: %v", ErrInternal, err))
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("failed to read body: %w", err)
	}

	// Обработка статус-кодов
	switch {
	case resp.StatusCode == http.StatusOK:
		return body, nil
	case resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests:
		return nil, fmt.Errorf("unexpected status code %d", resp.StatusCode)
	default:
		return nil, backoff.Permanent(fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body)))
	}
}

func (c *Client) parseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.In(c.loc), nil
	}
	for _, layout := range naiveLayouts {
		if t, err := time.ParseInLocation(layout, s, c.loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: time %q", ErrInvalidResponse, s)
}

func (c *Client) record(endpoint, result string) {
	if c.metrics != nil {
		c.metrics.FeedFetched(endpoint, result)
	}
}

func mapState(state string) domain.PCState {
	switch state {
	case "ReadyForUser":
		return domain.PCAvailable
	case "UserLoggedIn", "AdminMode":
		return domain.PCInUse
	case "Off":
		return domain.PCOffline
	default:
		return domain.PCUnknown
	}
}
