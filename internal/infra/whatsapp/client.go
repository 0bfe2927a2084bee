package whatsapp

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// HTTPリレー経由でWhatsAppメッセージを送るクライアント。
// 下流が固まっても注文リクエストを巻き込まないようタイムアウトは短め。
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func NewClient(baseURL string, apiKey string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

// Send はテキストメッセージを1件送る。non-2xxはエラー。
func (c *Client) Send(ctx context.Context, phone string, body string) error {
	form := url.Values{}
	form.Set("token", c.apiKey)
	form.Set("to", phone)
	form.Set("body", body)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/messages/chat", strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	res, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return fmt.Errorf("whatsapp relay returned %d", res.StatusCode)
	}
	return nil
}
