package telemetry

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

const mixpanelTimeout = 10 * time.Second

// MixpanelTransport delivers events to the Mixpanel ingestion API. Each
// event is posted individually; the device id is used as the distinct id so
// events of one terminal group together.
type MixpanelTransport struct {
	httpClient *http.Client
	baseURL    string
	token      string
	deviceID   string
	logger     *slog.Logger
}

// NewMixpanelTransport creates a transport posting to the Mixpanel API at
// baseURL with the given project token.
func NewMixpanelTransport(baseURL, token, deviceID string, logger *slog.Logger) *MixpanelTransport {
	return &MixpanelTransport{
		httpClient: &http.Client{Timeout: mixpanelTimeout},
		baseURL:    baseURL,
		token:      token,
		deviceID:   deviceID,
		logger:     logger,
	}
}

type mixpanelEvent struct {
	Event      string         `json:"event"`
	Properties map[string]any `json:"properties"`
}

// TrySend posts one event and reports whether the API accepted it.
func (t *MixpanelTransport) TrySend(ctx context.Context, event Event) bool {
	props := map[string]any{
		"token":       t.token,
		"distinct_id": t.deviceID,
		"time":        event.Time.Unix(),
	}
	if event.UserID != 0 {
		props["user_id"] = event.UserID
	}
	for k, v := range event.Props {
		props[k] = v
	}

	body, err := json.Marshal([]mixpanelEvent{{Event: event.Name, Properties: props}})
	if err != nil {
		t.logger.Error("failed to marshal telemetry event", "event", event.Name, "error", err)
		return false
	}

	url := fmt.Sprintf("%s/track", t.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		t.logger.Error("failed to create telemetry request", "error", err)
		return false
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "text/plain")

	resp, err := t.httpClient.Do(req)
	if err != nil {
		t.logger.Warn("telemetry request failed", "event", event.Name, "error", err)
		return false
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		t.logger.Warn("telemetry request refused", "event", event.Name, "status", resp.StatusCode)
		return false
	}
	return true
}
