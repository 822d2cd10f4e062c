package workflow

import (
	"errors"

	"github.com/ridwanfathin/ai-invoice-import/internal/billingapi"
)

var (
	// ErrSessionNotFound is returned for unknown or expired sessions
	ErrSessionNotFound = errors.New("workflow session not found")
	// ErrBusy is returned when a backend call for the session is still in flight
	ErrBusy = errors.New("workflow is waiting for the backend")
	// ErrInvalidTransition is returned when the action does not apply to the current state
	ErrInvalidTransition = errors.New("action not allowed in the current workflow state")
	// ErrUnknownField is returned for edits to fields the form does not have
	ErrUnknownField = errors.New("unknown invoice field")
	// ErrUnknownUnit is returned for line item units outside gm, kg and pcs
	ErrUnknownUnit = errors.New("unknown unit")
	// ErrReadOnlyField is returned for edits to server computed fields
	ErrReadOnlyField = errors.New("field is computed by the backend")
	// ErrLineItemIndex is returned for edits addressing a line item that does not exist
	ErrLineItemIndex = errors.New("line item index out of range")
)

// Banner messages shown to the user
const (
	MsgLoadBusinesses = "Failed to load businesses. Please try again."
	MsgLoadCustomers  = "Failed to load customers for the selected business."
	MsgProcessFailed  = "Failed to process invoice image. Please try again."
	MsgCreateFailed   = "Failed to create invoice. Please try again."
	// MsgCreateInterrupted is shown when a creation never reported back; the
	// invoice may exist in the backend already
	MsgCreateInterrupted = "Invoice creation did not complete. Please check your invoices before trying again."
)

// EditError describes an edit that could not be applied
type EditError struct {
	Field string
	Item  int // -1 for invoice level fields
	Err   error
}

func (e *EditError) Error() string {
	if e.Item >= 0 {
		return "line_items[" + itoa(e.Item) + "]." + e.Field + ": " + e.Err.Error()
	}
	return e.Field + ": " + e.Err.Error()
}

func (e *EditError) Unwrap() error {
	return e.Err
}

// backendMessage returns the backend's own error message when it sent one,
// otherwise the fallback
func backendMessage(err error, fallback string) string {
	var apiErr *billingapi.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
