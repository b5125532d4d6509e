package billing_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/zola-inventory-api/internal/application/billing"
	"github.com/jhoicas/zola-inventory-api/internal/application/dto"
	"github.com/jhoicas/zola-inventory-api/internal/domain"
	"github.com/jhoicas/zola-inventory-api/internal/domain/entity"
)

type stubGenerator struct{}

func (stubGenerator) GenerateInvoicePDF(_ context.Context, inv *entity.Invoice, _ *entity.Supplier) ([]byte, error) {
	return []byte("%PDF-" + inv.InvoiceNumber), nil
}

type mockMailer struct{ mock.Mock }

func (m *mockMailer) Send(ctx context.Context, msg billing.Message) error {
	return m.Called(ctx, msg).Error(0)
}

func createInvoice(t *testing.T) (*billing.PDFUseCase, *mockMailer, *dto.InvoiceResponse) {
	t.Helper()
	store := newStore(t)
	inv, err := newCreateUC(store).CreateInvoice(context.Background(), userID, dto.CreateInvoiceRequest{
		CustomerName: "Mesa 2",
		Items:        []dto.InvoiceItemRequest{{ProductID: flourID, Quantity: 1}},
	})
	require.NoError(t, err)
	mailer := &mockMailer{}
	return billing.NewPDFUseCase(store.Invoices(), store.Suppliers(), stubGenerator{}, mailer, nil), mailer, inv
}

func TestDownloadInvoicePDF(t *testing.T) {
	uc, _, inv := createInvoice(t)

	pdf, filename, err := uc.DownloadInvoicePDF(context.Background(), inv.ID)
	require.NoError(t, err)
	assert.Equal(t, "fatura_"+inv.InvoiceNumber+".pdf", filename)
	assert.Equal(t, "%PDF-"+inv.InvoiceNumber, string(pdf))

	_, _, err = uc.DownloadInvoicePDF(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSendInvoiceEmail_AdjuntaElPDF(t *testing.T) {
	uc, mailer, inv := createInvoice(t)
	mailer.On("Send", mock.Anything, mock.MatchedBy(func(msg billing.Message) bool {
		return len(msg.To) == 1 && msg.To[0] == "cliente@example.com" &&
			len(msg.Attachments) == 1 && msg.Attachments[0].ContentType == "application/pdf" &&
			msg.Subject == "Fatura "+inv.InvoiceNumber
	})).Return(nil).Once()

	require.NoError(t, uc.SendInvoiceEmail(context.Background(), inv.ID, "cliente@example.com"))
	mailer.AssertExpectations(t)
}

func TestSendInvoiceEmail_ErrorDelServidor(t *testing.T) {
	uc, mailer, inv := createInvoice(t)
	mailer.On("Send", mock.Anything, mock.Anything).Return(errors.New("smtp caído")).Once()

	err := uc.SendInvoiceEmail(context.Background(), inv.ID, "cliente@example.com")
	assert.ErrorContains(t, err, "smtp caído")
}

func TestSendInvoiceEmail_SinMailer(t *testing.T) {
	store := newStore(t)
	uc := billing.NewPDFUseCase(store.Invoices(), store.Suppliers(), stubGenerator{}, nil, nil)
	assert.ErrorIs(t, uc.SendInvoiceEmail(context.Background(), "x", "a@b.com"), billing.ErrMailerDisabled)
}
