// Package chatdir pushes user profiles to an external chat-directory service
// so members are addressable in third-party chat clients. Every call is best
// effort by policy: call sites log the returned error and carry on, a sync
// failure must never fail the primary operation.
package chatdir

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/linguamate/core/internal/config"
	"github.com/linguamate/core/internal/models"
)

// Client talks to the chat-directory HTTP API.
type Client struct {
	endpoint  string
	apiKey    string
	apiSecret string
	httpc     *http.Client
}

// New builds a directory client; returns nil when the feature is disabled,
// which callers treat as a no-op sink.
func New(cfg config.ChatDirConfig) *Client {
	if !cfg.Enable {
		return nil
	}
	return &Client{
		endpoint:  strings.TrimSuffix(strings.TrimSpace(cfg.Endpoint), "/"),
		apiKey:    cfg.APIKey,
		apiSecret: cfg.APISecret,
		httpc:     &http.Client{Timeout: 10 * time.Second},
	}
}

type directoryUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Image string `json:"image,omitempty"`
}

// UpsertUser creates or updates the user's directory entry.
func (c *Client) UpsertUser(ctx context.Context, user *models.UserModel) error {
	if c == nil {
		return nil
	}

	body, err := json.Marshal(directoryUser{
		ID:    user.ID,
		Name:  user.FullName,
		Image: user.ProfilePic,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+"/users", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Api-Key", c.apiKey)
	req.Header.Set("X-Directory-Signature", c.sign(body))

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("directory upsert: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("directory upsert: unexpected status %d", resp.StatusCode)
	}
	return nil
}

func (c *Client) sign(body []byte) string {
	mac := hmac.New(sha256.New, []byte(c.apiSecret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}
