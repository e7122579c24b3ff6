package messaging

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"leadcapture/internal/domain"
)

// Config holds the Cloud API endpoint and credentials. AccessToken comes from
// configuration; it is never compiled in.
type Config struct {
	Provider    string
	APIURL      string
	PhoneID     string
	AccessToken string
}

// NewSender returns a MessageSender for the configured provider. "whatsapp"
// talks to the WhatsApp Cloud API; "noop" or unknown logs and succeeds.
func NewSender(cfg Config, client *http.Client, logger *slog.Logger) domain.MessageSender {
	switch cfg.Provider {
	case "whatsapp":
		if client == nil {
			client = http.DefaultClient
		}
		return &whatsappSender{
			client:      client,
			apiURL:      cfg.APIURL,
			phoneID:     cfg.PhoneID,
			accessToken: cfg.AccessToken,
		}
	case "noop":
		return &noopSender{logger: logger}
	default:
		logger.Warn("unknown messaging provider, using noop", "provider", cfg.Provider)
		return &noopSender{logger: logger}
	}
}

type whatsappSender struct {
	client      *http.Client
	apiURL      string
	phoneID     string
	accessToken string
}

type templateParameter struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type templateComponent struct {
	Type       string              `json:"type"`
	Parameters []templateParameter `json:"parameters"`
}

type templateLanguage struct {
	Code string `json:"code"`
}

type templatePayload struct {
	Name       string              `json:"name"`
	Language   templateLanguage    `json:"language"`
	Components []templateComponent `json:"components"`
}

type messagePayload struct {
	MessagingProduct string          `json:"messaging_product"`
	To               string          `json:"to"`
	Type             string          `json:"type"`
	Template         templatePayload `json:"template"`
}

// SendTemplate posts one templated message to the Cloud API. Any non-2xx
// response is an error; the caller decides what a failure means.
func (s *whatsappSender) SendTemplate(ctx context.Context, req *domain.NotificationRequest) error {
	params := make([]templateParameter, 0, len(req.Parameters))
	for _, p := range req.Parameters {
		params = append(params, templateParameter{Type: "text", Text: p})
	}
	payload := messagePayload{
		MessagingProduct: "whatsapp",
		To:               req.Recipient,
		Type:             "template",
		Template: templatePayload{
			Name:     req.TemplateName,
			Language: templateLanguage{Code: req.LanguageCode},
			Components: []templateComponent{
				{Type: "body", Parameters: params},
			},
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode message payload: %w", err)
	}

	url := fmt.Sprintf("%s/%s/messages", s.apiURL, s.phoneID)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+s.accessToken)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("messaging api returned status %d: %s", resp.StatusCode, detail)
	}
	return nil
}

type noopSender struct {
	logger *slog.Logger
}

func (n *noopSender) SendTemplate(ctx context.Context, req *domain.NotificationRequest) error {
	n.logger.InfoContext(ctx, "message would be sent (noop)",
		"to", req.Recipient, "template", req.TemplateName)
	return nil
}
