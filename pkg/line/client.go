package line

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	defaultBaseURL = "https://api.line.me"

	// MaxMessageLength is the LINE text message limit. Longer texts are
	// truncated with a trailing ellipsis before sending.
	MaxMessageLength = 5000
)

// Client sends messages through the LINE Messaging API.
type Client struct {
	AccessToken string
	BaseURL     string
	HTTPClient  *http.Client
}

func NewClient(accessToken string) *Client {
	return &Client{
		AccessToken: accessToken,
		BaseURL:     defaultBaseURL,
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type pushMessageRequest struct {
	To       string        `json:"to"`
	Messages []textMessage `json:"messages"`
}

type textMessage struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// PushText pushes a text message to a user, group, or room id.
func (c *Client) PushText(ctx context.Context, to, text string) error {
	payload := pushMessageRequest{
		To:       to,
		Messages: []textMessage{{Type: "text", Text: Truncate(text)}},
	}
	payloadJson, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.BaseURL+"/v2/bot/message/push",
		bytes.NewBuffer(payloadJson),
	)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.AccessToken)
	req.Header.Set("Content-Type", "application/json")

	res, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		resBody, _ := io.ReadAll(res.Body)
		return fmt.Errorf(
			"push message failed, got status %d with response body %s",
			res.StatusCode,
			string(resBody),
		)
	}
	return nil
}

// Truncate caps text at MaxMessageLength runes, replacing the tail with "...".
func Truncate(text string) string {
	runes := []rune(text)
	if len(runes) <= MaxMessageLength {
		return text
	}
	return string(runes[:MaxMessageLength-3]) + "..."
}
