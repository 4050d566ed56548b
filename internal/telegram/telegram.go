// Package telegram is a thin client for the Telegram Bot HTTP API. It only
// covers the calls the relay needs: sending a text message and probing a
// chat. Errors are classified so callers can tell a dead destination from a
// transient transport failure.
package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/avenkat/caprelay/internal/circuitbreaker"
	"github.com/avenkat/caprelay/internal/errors"
)

// DefaultBaseURL is the public Bot API endpoint
const DefaultBaseURL = "https://api.telegram.org"

// Client talks to the Telegram Bot API
type Client struct {
	baseURL    string
	botToken   string
	parseMode  string
	httpClient *http.Client
	breaker    *circuitbreaker.CircuitBreaker
}

// Config holds Telegram client configuration
type Config struct {
	BaseURL   string
	BotToken  string
	ParseMode string
	Timeout   time.Duration
}

// Chat describes a Telegram chat as returned by getChat
type Chat struct {
	ID       int64  `json:"id"`
	Type     string `json:"type"`
	Title    string `json:"title"`
	Username string `json:"username"`
}

// apiResponse is the common Bot API envelope
type apiResponse struct {
	OK          bool            `json:"ok"`
	ErrorCode   int             `json:"error_code"`
	Description string          `json:"description"`
	Result      json.RawMessage `json:"result"`
}

// New creates a new Telegram client
func New(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}

	return &Client{
		baseURL:   cfg.BaseURL,
		botToken:  cfg.BotToken,
		parseMode: cfg.ParseMode,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		breaker: circuitbreaker.New(circuitbreaker.Config{
			IsSuccessful: func(err error) bool {
				// A dead destination must not trip the breaker; the
				// transport itself is healthy.
				return err == nil || errors.IsTerminalForward(err)
			},
		}),
	}
}

// SendMessage delivers text to a chat. The returned error is a
// TargetNotFoundError or ForbiddenError when the destination itself is the
// problem, a TransportError otherwise.
func (c *Client) SendMessage(ctx context.Context, chatID, text string) error {
	payload := map[string]interface{}{
		"chat_id": chatID,
		"text":    text,
	}
	if c.parseMode != "" {
		payload["parse_mode"] = c.parseMode
	}

	return c.breaker.Execute(func() error {
		_, err := c.call(ctx, "sendMessage", payload, chatID)
		return err
	})
}

// GetChat probes a chat and returns its metadata. Used by status commands
// to verify the dump destination is still reachable.
func (c *Client) GetChat(ctx context.Context, chatID string) (*Chat, error) {
	var chat Chat
	err := c.breaker.Execute(func() error {
		result, err := c.call(ctx, "getChat", map[string]interface{}{"chat_id": chatID}, chatID)
		if err != nil {
			return err
		}
		if err := json.Unmarshal(result, &chat); err != nil {
			return errors.TransportError("failed to decode chat", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &chat, nil
}

// BreakerState reports the transport circuit breaker state
func (c *Client) BreakerState() circuitbreaker.State {
	return c.breaker.State()
}

func (c *Client) call(ctx context.Context, method string, payload map[string]interface{}, chatID string) (json.RawMessage, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, errors.TransportError("failed to marshal request body", err)
	}

	url := fmt.Sprintf("%s/bot%s/%s", c.baseURL, c.botToken, method)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return nil, errors.TransportError("failed to create request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.TransportError("request failed", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.TransportError("failed to read response", err)
	}

	var envelope apiResponse
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, errors.TransportError(
			fmt.Sprintf("unexpected response with status %d", resp.StatusCode), err)
	}

	if !envelope.OK {
		return nil, classifyAPIError(chatID, envelope.ErrorCode, envelope.Description)
	}

	return envelope.Result, nil
}

// classifyAPIError maps a Bot API error to the relay's error taxonomy.
// "chat not found" and permission errors are terminal for the destination;
// everything else is treated as transient.
func classifyAPIError(chatID string, code int, description string) error {
	apiErr := fmt.Errorf("telegram api error %d: %s", code, description)
	lower := strings.ToLower(description)

	switch {
	case strings.Contains(lower, "not found"):
		return errors.TargetNotFoundError(chatID, apiErr)
	case strings.Contains(lower, "forbidden"), strings.Contains(lower, "not enough rights"):
		return errors.ForbiddenError(chatID, apiErr)
	default:
		return errors.TransportError(description, apiErr)
	}
}
