package notify

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"newswatch/pkg/config"
)

// Telegram delivers messages to one fixed chat via the Bot API. It makes a
// single attempt per call and never retries internally - an error means the
// item stays undelivered and will be rediscovered on the next run.
type Telegram struct {
	token  string
	chatID string
	api    string
	client *http.Client
}

// NewTelegram creates a telegram notifier
func NewTelegram(cfg config.TelegramConfig) *Telegram {
	return &Telegram{
		token:  cfg.Token,
		chatID: cfg.ChatID,
		api:    "https://api.telegram.org",
		client: &http.Client{Timeout: cfg.Timeout},
	}
}

// Send posts one message to the configured chat
func (t *Telegram) Send(ctx context.Context, text string) error {
	if t.token == "" || t.chatID == "" {
		return fmt.Errorf("telegram notifier misconfigured")
	}

	endpoint := fmt.Sprintf("%s/bot%s/sendMessage", t.api, t.token)
	form := url.Values{}
	form.Set("chat_id", t.chatID)
	form.Set("text", text)
	form.Set("parse_mode", "HTML")
	form.Set("disable_web_page_preview", "false")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := t.client.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("telegram error: %s, %s", resp.Status, strings.TrimSpace(string(body)))
	}

	return nil
}
