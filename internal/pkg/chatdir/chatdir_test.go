package chatdir

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/linguamate/core/internal/config"
	"github.com/linguamate/core/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_DisabledReturnsNil(t *testing.T) {
	c := New(config.ChatDirConfig{Enable: false, Endpoint: "http://example.com"})
	assert.Nil(t, c)

	// A nil client is a usable no-op sink.
	err := c.UpsertUser(context.Background(), &models.UserModel{})
	assert.NoError(t, err)
}

func TestUpsertUser_SignsAndPostsProfile(t *testing.T) {
	const secret = "s3cret"
	var (
		gotPath      string
		gotAPIKey    string
		gotSignature string
		gotBody      []byte
	)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAPIKey = r.Header.Get("X-Api-Key")
		gotSignature = r.Header.Get("X-Directory-Signature")
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := New(config.ChatDirConfig{
		Enable:    true,
		Endpoint:  srv.URL,
		APIKey:    "key-1",
		APISecret: secret,
	})
	require.NotNil(t, c)

	user := &models.UserModel{
		Base:       models.Base{ID: "user-1"},
		FullName:   "A",
		ProfilePic: "https://cdn.example.com/a.png",
	}
	require.NoError(t, c.UpsertUser(context.Background(), user))

	assert.Equal(t, "/users", gotPath)
	assert.Equal(t, "key-1", gotAPIKey)

	var payload map[string]string
	require.NoError(t, json.Unmarshal(gotBody, &payload))
	assert.Equal(t, "user-1", payload["id"])
	assert.Equal(t, "A", payload["name"])
	assert.Equal(t, "https://cdn.example.com/a.png", payload["image"])

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(gotBody)
	assert.Equal(t, hex.EncodeToString(mac.Sum(nil)), gotSignature)
}

func TestUpsertUser_NonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := New(config.ChatDirConfig{Enable: true, Endpoint: srv.URL})
	err := c.UpsertUser(context.Background(), &models.UserModel{Base: models.Base{ID: "user-1"}})
	assert.Error(t, err)
}

func TestUpsertUser_ServerUnreachable(t *testing.T) {
	c := New(config.ChatDirConfig{Enable: true, Endpoint: "http://127.0.0.1:1"})
	err := c.UpsertUser(context.Background(), &models.UserModel{Base: models.Base{ID: "user-1"}})
	assert.Error(t, err)
}
