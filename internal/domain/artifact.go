package domain

import "context"

// QRGenerator produces a QR image for a public registration link.
type QRGenerator interface {
	Generate(ctx context.Context, url string) ([]byte, error)
}

// ArtifactStore persists generated image bytes and returns a retrievable
// reference URL.
type ArtifactStore interface {
	Store(ctx context.Context, key string, data []byte, contentType string) (ref string, err error)
}
