package bagy

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"bagy2shopify/internal/apperr"
	"bagy2shopify/internal/config"
	"bagy2shopify/internal/logger"
)

var httpClient = &http.Client{
	Timeout: 60 * time.Second,
}

// Client talks to the source storefront REST API.
type Client struct {
	BaseURL string
	APIKey  string
	HTTP    *http.Client
	// Delay is slept between consecutive pages.
	Delay time.Duration
	Log   *zap.Logger
	// Out receives per-page progress lines.
	Out io.Writer
}

func NewClient(cfg *config.Config, log *zap.Logger) *Client {
	return &Client{
		BaseURL: strings.TrimRight(cfg.BagyAPIURL, "/"),
		APIKey:  cfg.BagyAPIKey,
		HTTP:    httpClient,
		Delay:   cfg.PageDelay,
		Log:     logger.OrNop(log),
		Out:     os.Stdout,
	}
}

func (c *Client) newRequest(ctx context.Context, path string, params url.Values) (*http.Request, error) {
	u := c.BaseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request for %s: %w", u, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.APIKey)
	req.Header.Set("Accept", "application/json")
	return req, nil
}

// get performs one GET and returns status and body. Only transport level
// failures are errors; HTTP statuses are left to the caller.
func (c *Client) get(ctx context.Context, path string, params url.Values) (int, []byte, error) {
	req, err := c.newRequest(ctx, path, params)
	if err != nil {
		return 0, nil, apperr.New(apperr.KindTransport, "requisição inválida", err)
	}

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return 0, nil, apperr.New(apperr.KindTransport, fmt.Sprintf("falha ao buscar %s", path), err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, apperr.New(apperr.KindTransport, fmt.Sprintf("falha ao ler resposta de %s", path), err)
	}
	return resp.StatusCode, body, nil
}

func (c *Client) httpClient() *http.Client {
	if c.HTTP != nil {
		return c.HTTP
	}
	return httpClient
}

func (c *Client) out() io.Writer {
	if c.Out != nil {
		return c.Out
	}
	return io.Discard
}

func (c *Client) log() *zap.Logger {
	return logger.OrNop(c.Log)
}

func excerpt(body []byte) string {
	const limit = 300
	s := strings.TrimSpace(string(body))
	if len(s) > limit {
		return s[:limit] + "..."
	}
	return s
}
