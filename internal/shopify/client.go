package shopify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"bagy2shopify/internal/apperr"
	"bagy2shopify/internal/config"
	"bagy2shopify/internal/logger"
	"bagy2shopify/internal/observability"
)

const defaultPageDelay = 500 * time.Millisecond

var httpClient = &http.Client{
	Timeout: 60 * time.Second,
}

// Client calls the Shopify Admin REST API.
type Client struct {
	// BaseURL is https://<shop>/admin/api/<version>.
	BaseURL string
	Token   string
	HTTP    *http.Client
	Delay   time.Duration
	Log     *zap.Logger
}

func NewClient(cfg *config.Config, log *zap.Logger) *Client {
	return &Client{
		BaseURL: fmt.Sprintf("https://%s/admin/api/%s", cfg.ShopifyShopDomain, cfg.ShopifyAPIVersion),
		Token:   cfg.ShopifyAccessToken,
		HTTP:    httpClient,
		Delay:   defaultPageDelay,
		Log:     logger.OrNop(log),
	}
}

// do sends one request and decodes the response into out when the status
// equals want. Other statuses come back as *StatusError.
func (c *Client) do(ctx context.Context, op, method, path string, params url.Values, body any, want int, out any) (http.Header, error) {
	u := strings.TrimRight(c.BaseURL, "/") + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, apperr.New(apperr.KindRecord, "falha ao serializar "+op, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request for %s: %w", u, err)
	}
	req.Header.Set("X-Shopify-Access-Token", c.Token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	client := c.HTTP
	if client == nil {
		client = httpClient
	}
	resp, err := client.Do(req)
	if err != nil {
		observability.TargetRequests.WithLabelValues(op, "error").Inc()
		return nil, apperr.New(apperr.KindTransport, "falha na chamada "+op, err)
	}
	defer resp.Body.Close()
	observability.TargetRequests.WithLabelValues(op, strconv.Itoa(resp.StatusCode)).Inc()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.Header, apperr.New(apperr.KindTransport, "falha ao ler resposta de "+op, err)
	}
	if resp.StatusCode != want {
		return resp.Header, &StatusError{Op: op, Status: resp.StatusCode, Body: strings.TrimSpace(string(data))}
	}
	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return resp.Header, apperr.New(apperr.KindTransport, "resposta inválida de "+op, err)
		}
	}
	return resp.Header, nil
}

func (c *Client) wait(ctx context.Context) error {
	if c.Delay <= 0 {
		return nil
	}
	t := time.NewTimer(c.Delay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func (c *Client) log() *zap.Logger {
	return logger.OrNop(c.Log)
}
