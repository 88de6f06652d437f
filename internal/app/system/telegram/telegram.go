// internal/app/system/telegram/telegram.go
package telegram

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// Client posts messages to a Telegram chat via the Bot API.
type Client struct {
	http   *resty.Client
	token  string
	chatID string
}

// New creates a Client for the given bot token and chat.
func New(token, chatID string) *Client {
	return &Client{
		http:   resty.New().SetTimeout(10 * time.Second),
		token:  token,
		chatID: chatID,
	}
}

type sendResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description"`
}

// SendMessage posts one text message to the configured chat.
func (c *Client) SendMessage(ctx context.Context, text string) error {
	var out sendResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]string{
			"chat_id": c.chatID,
			"text":    text,
		}).
		SetResult(&out).
		Post(fmt.Sprintf("https://api.telegram.org/bot%s/sendMessage", c.token))
	if err != nil {
		return err
	}
	if resp.IsError() || !out.OK {
		return fmt.Errorf("telegram sendMessage: status %d: %s", resp.StatusCode(), out.Description)
	}
	return nil
}
