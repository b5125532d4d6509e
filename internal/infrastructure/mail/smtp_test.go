package mail

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/zola-inventory-api/internal/application/billing"
	"github.com/jhoicas/zola-inventory-api/pkg/config"
)

func TestBuild_AdjuntaPDF(t *testing.T) {
	m := NewSMTPMailer(config.SMTPConfig{Host: "smtp.test", Port: 587, User: "bot@zola-pizza.com"})

	e, err := m.build(billing.Message{
		To:      []string{"cliente@example.com"},
		Subject: "Fatura INV-1",
		Text:    "Segue a fatura.",
		Attachments: []billing.Attachment{
			{Filename: "fatura_INV-1.pdf", ContentType: "application/pdf", Content: []byte("%PDF-1.3")},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "bot@zola-pizza.com", e.From)
	require.Len(t, e.Attachments, 1)
	assert.Equal(t, "fatura_INV-1.pdf", e.Attachments[0].Filename)

	raw, err := e.Bytes()
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(raw), "Subject: Fatura INV-1"))
}

func TestBuild_SinDestinatarios(t *testing.T) {
	_, err := NewSMTPMailer(config.SMTPConfig{}).build(billing.Message{Subject: "x"})
	assert.Error(t, err)
}

func TestSend_ContextoCancelado(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := NewSMTPMailer(config.SMTPConfig{Host: "smtp.test"}).Send(ctx, billing.Message{To: []string{"a@b.c"}})
	assert.ErrorIs(t, err, context.Canceled)
}
