package onesignal

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/totl-app/totl-api/internal/domain/notification"
	"github.com/totl-app/totl-api/internal/platform/logging"
	"github.com/totl-app/totl-api/internal/platform/resilience"
	"github.com/totl-app/totl-api/internal/usecase"
	"github.com/valyala/bytebufferpool"
)

const defaultBaseURL = "https://onesignal.com/api/v1"

var errOneSignalTransient = crerr.New("onesignal transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	AppID          string
	APIKey         string
	Timeout        time.Duration
	MaxRetries     int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client sends push notifications through OneSignal's create-notification
// API. The dispatch EventID is forwarded as OneSignal's external id, which
// makes the provider the idempotency ledger: replaying the same event id
// never double-delivers.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	appID          string
	apiKey         string
	maxRetries     int
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 10 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		appID:          strings.TrimSpace(cfg.AppID),
		apiKey:         strings.TrimSpace(cfg.APIKey),
		maxRetries:     max(cfg.MaxRetries, 0),
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
	}
}

type createNotificationRequest struct {
	AppID                  string            `json:"app_id"`
	ExternalID             string            `json:"external_id,omitempty"`
	IncludeExternalUserIDs []string          `json:"include_external_user_ids"`
	ChannelForExternalIDs  string            `json:"channel_for_external_user_ids"`
	Headings               map[string]string `json:"headings"`
	Contents               map[string]string `json:"contents"`
	Data                   map[string]string `json:"data,omitempty"`
	ThreadID               string            `json:"thread_id,omitempty"`
	AndroidGroup           string            `json:"android_group,omitempty"`
	IOSBadgeType           string            `json:"ios_badgeType,omitempty"`
	IOSBadgeCount          *int              `json:"ios_badgeCount,omitempty"`
}

type createNotificationResponse struct {
	ID         string `json:"id"`
	Recipients int    `json:"recipients"`
	Errors     any    `json:"errors"`
}

// Send implements notification.Dispatcher. The caller must never pass an
// empty UserIDs list; doing so is a programming error, not a provider one.
func (c *Client) Send(ctx context.Context, item notification.Dispatch) (notification.Receipt, error) {
	if len(item.UserIDs) == 0 {
		return notification.Receipt{}, fmt.Errorf("%w: dispatch requires at least one recipient", usecase.ErrInvalidInput)
	}
	if strings.TrimSpace(item.EventID) == "" {
		return notification.Receipt{}, fmt.Errorf("%w: dispatch requires an event id", usecase.ErrInvalidInput)
	}

	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "onesignal circuit breaker rejected request", "state", c.breaker.State())
			return notification.Receipt{}, fmt.Errorf("%w: push provider is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	request := createNotificationRequest{
		AppID:                  c.appID,
		ExternalID:             item.EventID,
		IncludeExternalUserIDs: item.UserIDs,
		ChannelForExternalIDs:  "push",
		Headings:               map[string]string{"en": item.Title},
		Contents:               map[string]string{"en": item.Body},
		Data:                   item.Data,
		ThreadID:               item.GroupingKey,
		AndroidGroup:           item.GroupingKey,
		IOSBadgeCount:          item.BadgeCount,
	}
	if item.BadgeCount != nil {
		request.IOSBadgeType = "SetTo"
	}

	body, err := sonic.Marshal(request)
	if err != nil {
		return notification.Receipt{}, fmt.Errorf("encode notification request: %w", err)
	}

	raw, err := c.executeRequest(ctx, body)
	if c.circuitEnabled {
		if err != nil && stderrors.Is(err, errOneSignalTransient) {
			c.breaker.RecordFailure()
		} else {
			c.breaker.RecordSuccess()
		}
	}
	if err != nil {
		return notification.Receipt{}, err
	}

	var decoded createNotificationResponse
	if err := sonic.Unmarshal(raw, &decoded); err != nil {
		return notification.Receipt{}, fmt.Errorf("decode provider payload: %w", err)
	}

	receipt := notification.Receipt{
		Accepted: decoded.Recipients,
		Failed:   max(len(item.UserIDs)-decoded.Recipients, 0),
	}
	c.logger.DebugContext(ctx, "onesignal dispatch complete",
		"event_id", item.EventID,
		"accepted", receipt.Accepted,
		"failed", receipt.Failed,
	)
	return receipt, nil
}

func (c *Client) executeRequest(ctx context.Context, body []byte) ([]byte, error) {
	fullURL := c.baseURL + "/notifications"

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, fullURL, bytes.NewReader(body))
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Accept", "application/json")
		req.Header.Set("Authorization", "Basic "+c.apiKey)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: send request: %v", errOneSignalTransient, err)
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
			_ = resp.Body.Close()
			switch {
			case readErr != nil:
				lastErr = fmt.Errorf("%w: read response body: %v", errOneSignalTransient, readErr)
			case resp.StatusCode >= 200 && resp.StatusCode < 300:
				return raw, nil
			case isRetryableStatus(resp.StatusCode):
				lastErr = fmt.Errorf("%w: provider status=%d body=%s", errOneSignalTransient, resp.StatusCode, abbreviateBody(raw))
			default:
				return nil, fmt.Errorf("provider status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
			}
		}

		if attempt == c.maxRetries {
			break
		}
		backoff := time.Duration(attempt+1) * time.Second
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("provider request failed")
	}
	c.logger.WarnContext(ctx, "onesignal request failed", "url", fullURL, "error", lastErr)
	return nil, lastErr
}

func isRetryableStatus(status int) bool {
	return status == http.StatusTooManyRequests || status >= http.StatusInternalServerError
}

func abbreviateBody(raw []byte) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	const maxPreview = 256
	preview := raw
	if len(preview) > maxPreview {
		preview = preview[:maxPreview]
	}
	for _, b := range preview {
		if b == '\n' || b == '\r' {
			_ = buf.WriteByte(' ')
			continue
		}
		_ = buf.WriteByte(b)
	}
	if len(raw) > maxPreview {
		_, _ = buf.WriteString("...(truncated)")
	}
	return buf.String()
}
