package circle

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github/chapool/go-gasless/internal/config"
	"github/chapool/go-gasless/internal/metrics"
	"github/chapool/go-gasless/internal/util"
)

// Client talks to the Circle Programmable Wallets (W3S) API. Every call is a
// single synchronous request/response; there is no retry.
type Client struct {
	config     config.Provider
	httpClient *http.Client
	metrics    *metrics.Service

	// newIdempotencyKey is swapped in tests.
	newIdempotencyKey func() string
}

func NewClient(cfg config.Provider, m *metrics.Service) *Client {
	return &Client{
		config: cfg,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		metrics:           m,
		newIdempotencyKey: uuid.NewString,
	}
}

// SetIdempotencyKeyFunc overrides how idempotency keys are generated.
func (c *Client) SetIdempotencyKeyFunc(fn func() string) {
	c.newIdempotencyKey = fn
}

type envelope struct {
	Data json.RawMessage `json:"data"`
}

type errorEnvelope struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Request sends method to BaseURL+endpoint and unwraps the {"data": ...}
// envelope. Only ErrConfiguration and ErrUnsupportedMethod are returned as
// errors, both before any network access. Remote rejections and transport
// failures are logged and reported through the returned Result.
func (c *Client) Request(ctx context.Context, method string, endpoint string, payload any) (Result, error) {
	return c.do(ctx, method, endpoint, endpoint, payload)
}

// do is Request with a separate metrics label for parameterized endpoints.
func (c *Client) do(ctx context.Context, method string, endpoint string, route string, payload any) (Result, error) {
	if !c.config.Configured() {
		return Result{}, ErrConfiguration
	}

	method = strings.ToUpper(method)
	if method != http.MethodGet && method != http.MethodPost {
		return Result{}, errors.WithMessagef(ErrUnsupportedMethod, "method %q", method)
	}

	log := util.LogFromContext(ctx).With().
		Str("method", method).
		Str("endpoint", endpoint).
		Logger()

	start := time.Now()
	result := c.send(ctx, method, endpoint, payload)
	c.metrics.ObserveProviderRequest(method, route, result.Outcome.String(), time.Since(start))

	switch result.Outcome {
	case OutcomeRemoteError:
		body := ""
		if remoteErr, ok := errorsAsRemote(result.Cause); ok {
			body = remoteErr.Body
		}
		log.Error().Int("status", result.StatusCode).Str("body", body).Msg("Provider rejected request")
	case OutcomeTransportError:
		log.Error().Err(result.Cause).Msg("Provider request failed")
	case OutcomeAbsent:
		log.Debug().Int("status", result.StatusCode).Msg("Provider response carried no data")
	case OutcomeOK:
		log.Debug().Int("status", result.StatusCode).Msg("Provider request succeeded")
	}

	return result, nil
}

func (c *Client) send(ctx context.Context, method string, endpoint string, payload any) Result {
	var body io.Reader
	if method == http.MethodPost && payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return transportFailure("encode payload", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, strings.TrimRight(c.config.BaseURL, "/")+endpoint, body)
	if err != nil {
		return transportFailure("build request", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.config.APIKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return transportFailure("send request", err)
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return transportFailure("read response", err)
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		remoteErr := &RemoteError{
			StatusCode: res.StatusCode,
			Body:       string(raw),
		}

		var e errorEnvelope
		if json.Unmarshal(raw, &e) == nil {
			remoteErr.Code = e.Code
			remoteErr.Message = e.Message
		}

		return Result{Outcome: OutcomeRemoteError, StatusCode: res.StatusCode, Cause: remoteErr}
	}

	if len(bytes.TrimSpace(raw)) == 0 {
		return Result{Outcome: OutcomeAbsent, StatusCode: res.StatusCode}
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		result := transportFailure("decode response", err)
		result.StatusCode = res.StatusCode

		return result
	}

	if isNullOrEmpty(env.Data) {
		return Result{Outcome: OutcomeAbsent, StatusCode: res.StatusCode}
	}

	return Result{Outcome: OutcomeOK, StatusCode: res.StatusCode, Data: env.Data}
}

func transportFailure(op string, err error) Result {
	return Result{Outcome: OutcomeTransportError, Cause: &TransportError{Op: op, Err: err}}
}
