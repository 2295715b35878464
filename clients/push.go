package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/joy095/consult/logger"
)

const defaultExpoPushURL = "https://exp.host/--/api/v2/push/send"

// PushMessage is one outbound push to a single device token.
type PushMessage struct {
	Token string            `json:"to"`
	Title string            `json:"title"`
	Body  string            `json:"body"`
	Data  map[string]string `json:"data,omitempty"`
}

// PushClientWrapper provides an interface for push delivery.
// This interface allows for easier testing by mocking provider interactions.
type PushClientWrapper interface {
	Send(ctx context.Context, msg PushMessage) error
}

// ExpoPushClient implements PushClientWrapper against the Expo push HTTP API.
type ExpoPushClient struct {
	URL        string
	HTTPClient *http.Client
}

// NewExpoPushClient creates a push client. EXPO_PUSH_URL overrides the
// endpoint, which tests point at a local server.
func NewExpoPushClient() *ExpoPushClient {
	url := os.Getenv("EXPO_PUSH_URL")
	if url == "" {
		url = defaultExpoPushURL
	}
	return &ExpoPushClient{
		URL:        url,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type expoPushResponse struct {
	Data struct {
		Status  string `json:"status"`
		Message string `json:"message"`
	} `json:"data"`
}

// Send posts one push message. Any non-2xx response or a per-ticket "error"
// status counts as a delivery failure.
func (e *ExpoPushClient) Send(ctx context.Context, msg PushMessage) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal push message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.URL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build push request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := e.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("push request failed: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		logger.WarnLogger.Warnf("Push provider returned status %d: %s", resp.StatusCode, string(body))
		return fmt.Errorf("push provider returned status %d", resp.StatusCode)
	}

	var ticket expoPushResponse
	if err := json.Unmarshal(body, &ticket); err == nil && ticket.Data.Status == "error" {
		return fmt.Errorf("push provider rejected message: %s", ticket.Data.Message)
	}

	return nil
}
