package controllers

import (
	"crypto/subtle"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"leadcapture/internal/delivery/http/helpers"
	"leadcapture/internal/domain"
)

// whatsappObject is the top-level object name Meta sends for WhatsApp
// Business Account webhook deliveries.
const whatsappObject = "whatsapp_business_account"

// webhookPayload mirrors the parts of Meta's webhook delivery we consume:
// inbound text messages plus the contact profile names that accompany them.
type webhookPayload struct {
	Object string `json:"object"`
	Entry  []struct {
		Changes []struct {
			Value struct {
				Messages []struct {
					From string `json:"from"`
					Text struct {
						Body string `json:"body"`
					} `json:"text"`
				} `json:"messages"`
				Contacts []struct {
					Profile struct {
						Name string `json:"name"`
					} `json:"profile"`
				} `json:"contacts"`
			} `json:"value"`
		} `json:"changes"`
	} `json:"entry"`
}

type WebhookController struct {
	Logger      *slog.Logger
	Inbox       domain.MessageInbox
	VerifyToken string
}

func NewWebhookController(logger *slog.Logger, inbox domain.MessageInbox, verifyToken string) *WebhookController {
	return &WebhookController{
		Logger:      logger,
		Inbox:       inbox,
		VerifyToken: verifyToken,
	}
}

// Verify godoc
// @Summary Webhook verification handshake and inbox readout
// @Description With hub.mode=subscribe this performs Meta's subscription handshake: the challenge is echoed back in plain text when hub.verify_token matches, 403 otherwise. Without handshake parameters it returns the recent inbound messages.
// @Tags webhook
// @Produce json
// @Param hub.mode query string false "Set to subscribe for the handshake"
// @Param hub.verify_token query string false "Configured verify token"
// @Param hub.challenge query string false "Challenge string to echo"
// @Success 200 {string} string "Challenge echo, or the message inbox"
// @Failure 403 {object} helpers.APIResponse "error.code: bad_request"
// @Router /webhook [get]
func (c *WebhookController) Verify(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	mode := q.Get("hub.mode")
	if mode == "" && !q.Has("hub.verify_token") {
		helpers.WriteJSONSuccess(w, http.StatusOK, c.Inbox.Messages())
		return
	}
	token := q.Get("hub.verify_token")
	if mode == "subscribe" && c.VerifyToken != "" &&
		subtle.ConstantTimeCompare([]byte(token), []byte(c.VerifyToken)) == 1 {
		c.Logger.InfoContext(r.Context(), "webhook subscription verified")
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(q.Get("hub.challenge")))
		return
	}
	helpers.WriteJSONError(w, http.StatusForbidden, helpers.ErrCodeBadRequest, "verification failed")
}

// Receive godoc
// @Summary Receive inbound WhatsApp messages
// @Description Accepts Meta's webhook delivery, records inbound text messages in the in-memory inbox, and acknowledges with EVENT_RECEIVED. Deliveries for other webhook objects are rejected with 404.
// @Tags webhook
// @Accept json
// @Produce plain
// @Success 200 {string} string "EVENT_RECEIVED"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /webhook [post]
func (c *WebhookController) Receive(w http.ResponseWriter, r *http.Request) {
	var payload webhookPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "malformed payload")
		return
	}
	if payload.Object != whatsappObject {
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "unsupported webhook object")
		return
	}
	now := time.Now()
	for _, entry := range payload.Entry {
		for _, change := range entry.Changes {
			for _, msg := range change.Value.Messages {
				if msg.From == "" && msg.Text.Body == "" {
					continue
				}
				c.Inbox.Append(domain.InboundMessage{
					From:       msg.From,
					Text:       msg.Text.Body,
					ReceivedAt: now,
				})
				c.Logger.InfoContext(r.Context(), "inbound message recorded", "from", msg.From)
			}
		}
	}
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("EVENT_RECEIVED"))
}
