package email

import (
	"testing"

	"leadcapture/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplateRenderer_RegistrationReceipt(t *testing.T) {
	r := NewTemplateRenderer()
	data := &domain.RegistrationReceiptEmailData{
		Email:     "asha@example.com",
		Name:      "Asha",
		EventName: "June Meet",
		Products:  "Shampoo, Serum",
	}

	subject, html, text, err := r.Render("registration_receipt", data)
	require.NoError(t, err)
	assert.Equal(t, "Thanks for registering for June Meet", subject)
	assert.Contains(t, html, "Asha")
	assert.Contains(t, html, "Shampoo, Serum")
	assert.Contains(t, text, "June Meet")
}

func TestTemplateRenderer_UnknownTemplate(t *testing.T) {
	r := NewTemplateRenderer()
	_, _, _, err := r.Render("does_not_exist", nil)
	require.Error(t, err)
}
