package billingapi

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"

	"github.com/ridwanfathin/ai-invoice-import/internal/domain"
)

const processPath = "/ai/invoice/process/"

// ImageField is the multipart field the extraction endpoint reads the image from
const ImageField = "image"

type processResponse struct {
	Data *domain.ExtractedInvoice `json:"data"`
}

// ProcessInvoiceImage uploads an invoice image and returns the data the backend extracted from it
func (c *Client) ProcessInvoiceImage(ctx context.Context, upload domain.Upload) (*domain.ExtractedInvoice, error) {
	const op = "process_invoice_image"

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	filename := upload.Filename
	if filename == "" {
		filename = "invoice"
	}
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, ImageField, filename))
	if upload.ContentType != "" {
		header.Set("Content-Type", upload.ContentType)
	} else {
		header.Set("Content-Type", "application/octet-stream")
	}

	part, err := writer.CreatePart(header)
	if err != nil {
		return nil, &APIError{Op: op, Err: fmt.Errorf("failed to create form part: %w", err)}
	}
	if _, err := part.Write(upload.Data); err != nil {
		return nil, &APIError{Op: op, Err: fmt.Errorf("failed to write image data: %w", err)}
	}
	if err := writer.Close(); err != nil {
		return nil, &APIError{Op: op, Err: fmt.Errorf("failed to finalize form: %w", err)}
	}

	req, err := c.newRequest(ctx, http.MethodPost, processPath, &body, writer.FormDataContentType())
	if err != nil {
		return nil, &APIError{Op: op, Err: fmt.Errorf("failed to create request: %w", err)}
	}

	var resp processResponse
	if err := c.do(op, req, &resp); err != nil {
		return nil, err
	}
	if resp.Data == nil {
		return nil, &APIError{Op: op, Err: fmt.Errorf("response has no data")}
	}
	return resp.Data, nil
}
