package billing

import (
	"context"

	"github.com/jhoicas/zola-inventory-api/internal/domain/entity"
)

// InvoicePDFGenerator puerto de salida para generar la representación gráfica (PDF) de una factura.
type InvoicePDFGenerator interface {
	GenerateInvoicePDF(ctx context.Context, inv *entity.Invoice, supplier *entity.Supplier) ([]byte, error)
}

// Attachment archivo adjunto a un correo.
type Attachment struct {
	Filename    string
	ContentType string
	Content     []byte
}

// Message correo saliente.
type Message struct {
	To          []string
	Subject     string
	Text        string
	Attachments []Attachment
}

// Mailer puerto de salida para el envío de correos.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}
