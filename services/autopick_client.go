package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

// AutoPicker fills the pick that is currently due in a live draft. One call
// makes at most one pick and advances current_pick; calling it again for a
// cursor that already moved must not pick twice.
type AutoPicker interface {
	AutoPick(ctx context.Context, eventID string) (*AutoPickResult, error)
}

// AutoPickResult is what the remote procedure reports back.
type AutoPickResult struct {
	EventID       string `json:"event_id"`
	ParticipantID string `json:"participant_id"`
	AssetID       string `json:"asset_id"`
	Overall       int    `json:"overall"`
	NextPick      int    `json:"next_pick"`
}

// AutoPickClient calls the external auto-pick procedure over HTTP.
type AutoPickClient struct {
	URL    string
	Token  string
	Client *http.Client
}

func NewAutoPickClient(url, token string) *AutoPickClient {
	return &AutoPickClient{
		URL:   url,
		Token: token,
		Client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// AutoPick posts {"event_id": ...} to the procedure. Errors are returned to
// the caller and never retried here.
func (c *AutoPickClient) AutoPick(ctx context.Context, eventID string) (*AutoPickResult, error) {
	if c == nil || c.URL == "" {
		return nil, ErrAutoPickOffline
	}
	jsonData, _ := json.Marshal(map[string]string{"event_id": eventID})

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.Token)

	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("auto-pick request: %w", err)
	}
	defer resp.Body.Close()

	body, readErr := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Printf("[AUTOPICK] procedure returned %d for event %s: %.200s", resp.StatusCode, eventID, string(body))
		return nil, fmt.Errorf("auto-pick failed: %d", resp.StatusCode)
	}
	if readErr != nil {
		return nil, fmt.Errorf("read auto-pick response: %w", readErr)
	}

	var out AutoPickResult
	if len(body) > 0 {
		if err := json.Unmarshal(body, &out); err != nil {
			return nil, fmt.Errorf("decode auto-pick response: %w", err)
		}
	}
	if out.EventID == "" {
		out.EventID = eventID
	}
	return &out, nil
}
