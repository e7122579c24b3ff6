package qr

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"leadcapture/internal/domain"
)

// maxImageBytes caps how much of the image response is read.
const maxImageBytes = 1 << 20

type httpGenerator struct {
	client *http.Client
	apiURL string
}

// NewHTTPGenerator returns a QRGenerator that calls an external QR image API
// (qrserver-compatible: GET with data and size query parameters, PNG body).
func NewHTTPGenerator(client *http.Client, apiURL string) domain.QRGenerator {
	if client == nil {
		client = http.DefaultClient
	}
	return &httpGenerator{client: client, apiURL: apiURL}
}

func (g *httpGenerator) Generate(ctx context.Context, link string) ([]byte, error) {
	q := url.Values{}
	q.Set("data", link)
	q.Set("size", "300x300")
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.apiURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch qr image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("qr api returned status: %d", resp.StatusCode)
	}
	img, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read qr image: %w", err)
	}
	if len(img) == 0 {
		return nil, fmt.Errorf("qr api returned empty image")
	}
	return img, nil
}
