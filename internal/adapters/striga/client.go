package striga

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/loopcard/loop_service/internal/infrastructure/metrics"
	"github.com/loopcard/loop_service/pkg/logger"
)

// Config represents Striga API client configuration
type Config struct {
	Environment Environment
	APIKeyID    string
	HMACSecret  string
	CardAppID   string
	APIBase     string // overrides the environment API base when set
	Timeout     time.Duration
}

// CallOption supplies an optional header for a signed request. Options
// are freely combinable.
type CallOption func(*callOptions)

type callOptions struct {
	userUUID  string
	cardAppID string
	bearer    string
	sensitive bool
}

// WithUserUUID binds the request to a managed user via the User-Uuid
// header.
func WithUserUUID(userUUID string) CallOption {
	return func(o *callOptions) { o.userUUID = userUUID }
}

// WithCardAppID attaches the card application identifier header.
func WithCardAppID(cardAppID string) CallOption {
	return func(o *callOptions) { o.cardAppID = cardAppID }
}

// WithBearer attaches an Authorization bearer header alongside the
// signature headers.
func WithBearer(token string) CallOption {
	return func(o *callOptions) { o.bearer = token }
}

// WithSensitiveResponse keeps the response body out of the debug log.
// Used for token-issuance calls whose payload must never be logged.
func WithSensitiveResponse() CallOption {
	return func(o *callOptions) { o.sensitive = true }
}

// Transport is the signed-request chokepoint every workflow component
// calls through. *Client is the production implementation; tests
// substitute counters and fakes.
type Transport interface {
	Do(ctx context.Context, method, url string, body, out interface{}, opts ...CallOption) error
	DoBearer(ctx context.Context, method, url, token string, out interface{}) error
	Endpoints() Endpoints
}

// Client represents a Striga API client
type Client struct {
	config     Config
	endpoints  Endpoints
	httpClient *http.Client
	logger     *logger.Logger
	metrics    *metrics.ProviderMetrics
}

// NewClient creates a new Striga API client
func NewClient(config Config, log *logger.Logger, m *metrics.ProviderMetrics) *Client {
	if config.Timeout == 0 {
		config.Timeout = 30 * time.Second
	}

	endpoints := config.Environment.Endpoints()
	if config.APIBase != "" {
		endpoints.API = config.APIBase
	}

	return &Client{
		config:     config,
		endpoints:  endpoints,
		httpClient: &http.Client{Timeout: config.Timeout},
		logger:     log,
		metrics:    m,
	}
}

// Endpoints returns the base URLs the client was constructed with.
func (c *Client) Endpoints() Endpoints {
	return c.endpoints
}

// CardAppID returns the configured card application identifier.
func (c *Client) CardAppID() string {
	return c.config.CardAppID
}

// Do performs a signed request against the Striga API. The signature is
// computed over the timestamp captured here, so a retried request must
// go back through Do and never reuse headers from a previous attempt.
func (c *Client) Do(ctx context.Context, method, url string, body, out interface{}, opts ...CallOption) error {
	options := callOptions{}
	for _, opt := range opts {
		opt(&options)
	}

	var bodyBytes []byte
	if body != nil {
		var err error
		bodyBytes, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
	}

	timestamp := strconv.FormatInt(time.Now().UnixMilli(), 10)
	signature := sign(c.config.HMACSecret, signingString(timestamp, method, url, bodyBytes))

	var reqBody io.Reader
	if bodyBytes != nil {
		reqBody = bytes.NewReader(bodyBytes)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Api-Key", c.config.APIKeyID)
	req.Header.Set("X-Timestamp", timestamp)
	req.Header.Set("X-Signature", signature)
	if options.userUUID != "" {
		req.Header.Set("User-Uuid", options.userUUID)
	}
	if options.cardAppID != "" {
		req.Header.Set("Card-App-Id", options.cardAppID)
	}
	if options.bearer != "" {
		req.Header.Set("Authorization", "Bearer "+options.bearer)
	}

	return c.perform(req, method, url, out, options.sensitive)
}

// DoBearer performs a request authenticated only by the given bearer
// token, with no signature header set. Used for the card-data hop,
// which Striga authorizes via a single-use token instead of the HMAC
// headers.
func (c *Client) DoBearer(ctx context.Context, method, url, token string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	return c.perform(req, method, url, out, true)
}

func (c *Client) perform(req *http.Request, method, url string, out interface{}, sensitive bool) error {
	start := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.ObserveRequest(method, "network_error", time.Since(start))
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		c.metrics.ObserveRequest(method, "network_error", time.Since(start))
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode >= 400 {
		c.metrics.ObserveRequest(method, "api_error", time.Since(start))
		apiErr := &APIError{StatusCode: resp.StatusCode}
		if err := json.Unmarshal(respBody, apiErr); err != nil || apiErr.Message == "" {
			apiErr.Message = string(respBody)
		}
		apiErr.StatusCode = resp.StatusCode
		c.logger.Error("Striga API request failed",
			"method", method,
			"url", url,
			"status_code", resp.StatusCode,
			"message", apiErr.Message,
		)
		return apiErr
	}

	c.metrics.ObserveRequest(method, "success", time.Since(start))

	if sensitive {
		c.logger.Debug("Striga API request completed", "method", method, "url", url)
	} else {
		c.logger.Debug("Striga API request completed",
			"method", method,
			"url", url,
			"response", prettyJSON(respBody),
		)
	}

	if out != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("failed to unmarshal response: %w", err)
		}
	}

	return nil
}

func prettyJSON(raw []byte) string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return string(raw)
	}
	return buf.String()
}
