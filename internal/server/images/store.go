// Package images provides the profile-picture storage capability. The rest of
// the server only ever sees the stable retrieval URL, never image bytes.
package images

import "context"

// Store externalizes an uploaded image and returns its retrieval URL.
type Store interface {
	Store(ctx context.Context, data []byte, contentType string) (string, error)
}
