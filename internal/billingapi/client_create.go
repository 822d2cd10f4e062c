package billingapi

import (
	"context"

	"github.com/ridwanfathin/ai-invoice-import/internal/domain"
)

const createPath = "/ai/invoice/create/"

type createRequest struct {
	BusinessID  string                   `json:"business_id"`
	InvoiceData *domain.ExtractedInvoice `json:"invoice_data"`
}

// CreateInvoice asks the backend to create an invoice from reviewed extraction data.
// Each call is a new creation; there is no deduplication.
func (c *Client) CreateInvoice(ctx context.Context, businessID string, invoice *domain.ExtractedInvoice) (*domain.CreatedInvoice, error) {
	var created domain.CreatedInvoice
	err := c.postJSON(ctx, "create_invoice", createPath, createRequest{
		BusinessID:  businessID,
		InvoiceData: invoice,
	}, &created)
	if err != nil {
		return nil, err
	}
	return &created, nil
}
