package qbittorrent

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"

	"github.com/s0up4200/qbtctl/session"
)

const maxErrorBody = 256

// Client issues Web API requests against one endpoint, carrying its stored token.
type Client struct {
	endpoint session.Endpoint
	http     *resty.Client
	logger   zerolog.Logger
}

// NewClient creates a client bound to sess. No request is sent.
func NewClient(sess session.Session, logger zerolog.Logger, opts ...Option) *Client {
	o := buildOptions(opts)

	rc := newRestyClient(sess.Endpoint, o, logger).
		SetCookies(ParseToken(sess.Token))

	return &Client{
		endpoint: sess.Endpoint,
		http:     rc,
		logger:   logger.With().Str("endpoint", sess.Endpoint.String()).Logger(),
	}
}

func newRestyClient(endpoint session.Endpoint, o clientOptions, logger zerolog.Logger) *resty.Client {
	return resty.NewWithClient(newHTTPClient(o, logger)).
		SetBaseURL(endpoint.String()).
		SetHeader("Referer", endpoint.String())
}

// Endpoint returns the endpoint the client is bound to.
func (c *Client) Endpoint() session.Endpoint {
	return c.endpoint
}

// Execute sends one request. GET params become the query string, any other
// method sends them form encoded. Every response passes checkResponse.
func (c *Client) Execute(ctx context.Context, method, path string, params url.Values) (*resty.Response, error) {
	req := c.http.R().SetContext(ctx)
	if len(params) > 0 {
		if method == http.MethodGet {
			req.SetQueryParamsFromValues(params)
		} else {
			req.SetFormDataFromValues(params)
		}
	}
	return c.do(req, method, path)
}

func (c *Client) do(req *resty.Request, method, path string) (*resty.Response, error) {
	c.logger.Debug().Str("method", method).Str("path", path).Msg("Sending request")

	resp, err := req.Execute(method, path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: %w", ErrTransport, method, path, err)
	}

	c.logger.Debug().
		Str("path", path).
		Int("status", resp.StatusCode()).
		Dur("took", resp.Time()).
		Msg("Received response")

	if err := checkResponse(resp, method, path); err != nil {
		return nil, err
	}
	return resp, nil
}

// checkResponse is the single place that classifies answers: 403 means the
// stored credentials are no longer accepted, anything else outside 2xx is an APIError.
func checkResponse(resp *resty.Response, method, path string) error {
	if resp.StatusCode() == http.StatusForbidden {
		return ErrSessionExpired
	}
	if !resp.IsSuccess() {
		body := strings.TrimSpace(resp.String())
		if len(body) > maxErrorBody {
			body = body[:maxErrorBody] + "..."
		}
		return &APIError{
			StatusCode: resp.StatusCode(),
			Method:     method,
			Path:       path,
			Body:       body,
		}
	}
	return nil
}

func decodeJSON(resp *resty.Response, v any) error {
	if err := json.Unmarshal(resp.Body(), v); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrDecode, resp.Request.URL, err)
	}
	return nil
}
