package clients

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPushServer(t *testing.T, handler http.HandlerFunc) *ExpoPushClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return &ExpoPushClient{URL: srv.URL, HTTPClient: &http.Client{Timeout: time.Second}}
}

func TestExpoPushClientSend(t *testing.T) {
	t.Run("Delivered", func(t *testing.T) {
		var received PushMessage
		client := newPushServer(t, func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "application/json", r.Header.Get("Content-Type"))
			require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"data":{"status":"ok"}}`))
		})

		err := client.Send(context.Background(), PushMessage{
			Token: "ExponentPushToken[abc]",
			Title: "Session Accepted",
			Body:  "Your session was accepted.",
			Data:  map[string]string{"booking_id": "b1"},
		})
		require.NoError(t, err)
		assert.Equal(t, "ExponentPushToken[abc]", received.Token)
		assert.Equal(t, "b1", received.Data["booking_id"])
	})

	t.Run("ServerError", func(t *testing.T) {
		client := newPushServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		})
		err := client.Send(context.Background(), PushMessage{Token: "tok"})
		assert.Error(t, err)
	})

	t.Run("TicketError", func(t *testing.T) {
		client := newPushServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"data":{"status":"error","message":"DeviceNotRegistered"}}`))
		})
		err := client.Send(context.Background(), PushMessage{Token: "tok"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "DeviceNotRegistered")
	})
}
