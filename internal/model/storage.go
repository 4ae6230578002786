package model

import (
	"context"
	"io"
)

// MediaStorage stores uploaded media assets (avatars, cover images) and
// returns a public URL for each stored object. Delete removes a superseded
// object once its replacement's URL is stored.
type MediaStorage interface {
	Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
}
