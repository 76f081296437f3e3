package assets

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Store accepts an image upload and returns a stable public URL.
type Store interface {
	UploadDataURI(ctx context.Context, folder, dataURI string) (string, error)
}

// ErrDisabled is returned when no asset backend is configured.
var ErrDisabled = errors.New("asset storage is not configured")

var extByContentType = map[string]string{
	"image/png":  "png",
	"image/jpeg": "jpg",
	"image/gif":  "gif",
	"image/webp": "webp",
}

// decodeDataURI splits a "data:<type>;base64,<payload>" string into content
// type and raw bytes.
func decodeDataURI(dataURI string) (contentType string, payload []byte, err error) {
	const prefix = "data:"
	if !strings.HasPrefix(dataURI, prefix) {
		return "", nil, fmt.Errorf("not a data URI")
	}
	meta, encoded, ok := strings.Cut(dataURI[len(prefix):], ",")
	if !ok {
		return "", nil, fmt.Errorf("malformed data URI")
	}
	contentType, _, _ = strings.Cut(meta, ";")
	if !strings.Contains(meta, "base64") {
		return "", nil, fmt.Errorf("unsupported data URI encoding")
	}
	payload, err = base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", nil, fmt.Errorf("decode data URI: %w", err)
	}
	if len(payload) == 0 {
		return "", nil, fmt.Errorf("empty data URI payload")
	}
	return contentType, payload, nil
}

// objectKey builds a collision-free key under folder for the given content type.
func objectKey(folder, contentType string) string {
	ext, ok := extByContentType[strings.ToLower(strings.TrimSpace(contentType))]
	if !ok {
		ext = "bin"
	}
	folder = strings.Trim(strings.TrimSpace(folder), "/")
	if folder == "" {
		folder = "uploads"
	}
	return folder + "/" + uuid.New().String() + "." + ext
}

// Disabled is a Store that rejects every upload; wired when assets are off.
type Disabled struct{}

func (Disabled) UploadDataURI(context.Context, string, string) (string, error) {
	return "", ErrDisabled
}
