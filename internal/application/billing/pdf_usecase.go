package billing

import (
	"context"
	"errors"
	"fmt"

	"github.com/jhoicas/zola-inventory-api/internal/domain"
	"github.com/jhoicas/zola-inventory-api/internal/domain/entity"
	"github.com/jhoicas/zola-inventory-api/internal/domain/repository"
	"github.com/jhoicas/zola-inventory-api/pkg/logger"
)

// ErrMailerDisabled se devuelve al enviar correo sin SMTP configurado.
var ErrMailerDisabled = errors.New("envío de correo no configurado")

// PDFUseCase genera la representación gráfica (PDF) de una factura y la envía por correo.
type PDFUseCase struct {
	invoiceRepo  repository.InvoiceRepository
	supplierRepo repository.SupplierRepository
	generator    InvoicePDFGenerator
	mailer       Mailer
	log          *logger.Logger
}

// NewPDFUseCase construye el caso de uso inyectando todas sus dependencias. mailer puede ser nil.
func NewPDFUseCase(
	invoiceRepo repository.InvoiceRepository,
	supplierRepo repository.SupplierRepository,
	generator InvoicePDFGenerator,
	mailer Mailer,
	log *logger.Logger,
) *PDFUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &PDFUseCase{
		invoiceRepo:  invoiceRepo,
		supplierRepo: supplierRepo,
		generator:    generator,
		mailer:       mailer,
		log:          log.Named("billing"),
	}
}

// DownloadInvoicePDF recupera la factura con sus líneas y genera el PDF.
//
// Retorna:
//   - (pdfBytes, filename, nil)  si todo sale bien.
//   - domain.ErrNotFound         si la factura no existe.
func (uc *PDFUseCase) DownloadInvoicePDF(ctx context.Context, invoiceID string) (pdfBytes []byte, filename string, err error) {
	inv, pdfBytes, err := uc.render(ctx, invoiceID)
	if err != nil {
		return nil, "", err
	}
	return pdfBytes, pdfFilename(inv), nil
}

// SendInvoiceEmail genera el PDF y lo envía adjunto a la dirección indicada.
func (uc *PDFUseCase) SendInvoiceEmail(ctx context.Context, invoiceID, to string) error {
	if uc.mailer == nil {
		return ErrMailerDisabled
	}
	inv, pdfBytes, err := uc.render(ctx, invoiceID)
	if err != nil {
		return err
	}
	msg := Message{
		To:      []string{to},
		Subject: "Fatura " + inv.InvoiceNumber,
		Text:    fmt.Sprintf("Olá %s,\n\nSegue em anexo a fatura %s.\n\nZola Pizza", inv.CustomerName, inv.InvoiceNumber),
		Attachments: []Attachment{{
			Filename:    pdfFilename(inv),
			ContentType: "application/pdf",
			Content:     pdfBytes,
		}},
	}
	if err := uc.mailer.Send(ctx, msg); err != nil {
		uc.log.Error().Err(err).Str("invoice_id", invoiceID).Msg("no se pudo enviar la factura por correo")
		return fmt.Errorf("correo: %w", err)
	}
	uc.log.Info().Str("invoice_number", inv.InvoiceNumber).Str("to", to).Msg("factura enviada por correo")
	return nil
}

func (uc *PDFUseCase) render(ctx context.Context, invoiceID string) (*entity.Invoice, []byte, error) {
	inv, err := uc.invoiceRepo.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, nil, fmt.Errorf("pdf: obtener factura: %w", err)
	}
	if inv == nil {
		return nil, nil, domain.ErrNotFound
	}

	// El proveedor es opcional; si no existe el PDF sale sin ese bloque.
	var supplier *entity.Supplier
	if inv.SupplierID != "" {
		supplier, err = uc.supplierRepo.GetByID(ctx, inv.SupplierID)
		if err != nil {
			return nil, nil, fmt.Errorf("pdf: obtener proveedor: %w", err)
		}
	}

	pdfBytes, err := uc.generator.GenerateInvoicePDF(ctx, inv, supplier)
	if err != nil {
		return nil, nil, fmt.Errorf("pdf: generación fallida: %w", err)
	}
	return inv, pdfBytes, nil
}

func pdfFilename(inv *entity.Invoice) string {
	return fmt.Sprintf("fatura_%s.pdf", inv.InvoiceNumber)
}
