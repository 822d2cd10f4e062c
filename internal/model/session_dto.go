package model

import (
	"strconv"
	"time"

	"github.com/ridwanfathin/ai-invoice-import/internal/domain"
	"github.com/ridwanfathin/ai-invoice-import/internal/workflow"
)

// CustomerOptionDTO is one entry of the review form's customer select
type CustomerOptionDTO struct {
	Value      string `json:"value"`
	Label      string `json:"label"`
	AIDetected bool   `json:"ai_detected,omitempty"`
}

// SessionDTO is the JSON snapshot of an import workflow session
type SessionDTO struct {
	ID              string                   `json:"id"`
	State           string                   `json:"state"`
	Busy            bool                     `json:"busy"`
	Error           string                   `json:"error,omitempty"`
	BusinessID      string                   `json:"business_id"`
	Businesses      []domain.Business        `json:"businesses"`
	Customers       []domain.Customer        `json:"customers"`
	CustomerOptions []CustomerOptionDTO      `json:"customer_options,omitempty"`
	Filename        string                   `json:"filename,omitempty"`
	Extracted       *domain.ExtractedInvoice `json:"extracted,omitempty"`
	Editable        *domain.ExtractedInvoice `json:"editable,omitempty"`
	Summary         *domain.CreatedInvoice   `json:"summary,omitempty"`
	InvoiceURL      string                   `json:"invoice_url,omitempty"`
	UpdatedAt       time.Time                `json:"updated_at"`
}

// FromDomain fills the DTO from a workflow session.
// viewURL is the base of created invoice links.
func (dto *SessionDTO) FromDomain(sess *workflow.Session, viewURL string) {
	dto.ID = sess.ID
	dto.State = string(sess.Kind())
	dto.Error = sess.Error
	dto.BusinessID = sess.BusinessID
	dto.Businesses = sess.Businesses
	dto.Customers = sess.Customers
	dto.Extracted = sess.Extracted()
	dto.Editable = sess.Editable()
	dto.Summary = sess.Summary()
	dto.UpdatedAt = sess.UpdatedAt

	switch st := sess.State.(type) {
	case workflow.Processing:
		dto.Busy = true
		dto.Filename = st.Filename
	case workflow.Creating:
		dto.Busy = true
	}

	if dto.Businesses == nil {
		dto.Businesses = []domain.Business{}
	}
	if dto.Customers == nil {
		dto.Customers = []domain.Customer{}
	}

	if dto.Editable != nil {
		options := workflow.CustomerOptions(sess)
		dto.CustomerOptions = make([]CustomerOptionDTO, len(options))
		for i, o := range options {
			dto.CustomerOptions[i] = CustomerOptionDTO{
				Value:      o.Value,
				Label:      o.Label,
				AIDetected: o.AIDetected,
			}
		}
	}

	if dto.Summary != nil {
		dto.InvoiceURL = InvoiceURL(viewURL, dto.Summary.InvoiceID)
	}
}

// InvoiceURL returns the link to a created invoice
func InvoiceURL(viewURL string, invoiceID int64) string {
	return viewURL + "/" + strconv.FormatInt(invoiceID, 10)
}

// EditDTO is one field edit in a JSON edit request
type EditDTO struct {
	Item  *int   `json:"item,omitempty" binding:"omitempty,min=0"` // line item index, omitted for invoice fields
	Field string `json:"field" binding:"required"`
	Value string `json:"value"`
}

// EditRequest is the JSON body of an edit request
type EditRequest struct {
	Edits []EditDTO `json:"edits" binding:"required,dive"`
}
