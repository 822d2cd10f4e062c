package workflow

import "github.com/ridwanfathin/ai-invoice-import/internal/domain"

// Kind names a workflow state
type Kind string

const (
	KindAwaitingUpload Kind = "awaiting_upload"
	KindProcessing     Kind = "processing"
	KindReviewing      Kind = "reviewing"
	KindCreating       Kind = "creating"
	KindCreated        Kind = "created"
)

// State is one of AwaitingUpload, Processing, Reviewing, Creating or Created.
// The set is closed; other packages can switch on it but not extend it.
type State interface {
	Kind() Kind
	isState()
}

// AwaitingUpload waits for the user to submit an image and a business
type AwaitingUpload struct{}

// Processing means the image is with the extraction backend
type Processing struct {
	Filename string `json:"filename"`
}

// Reviewing holds the extraction result and the user's working copy of it.
// Editable never aliases Extracted.
type Reviewing struct {
	Extracted *domain.ExtractedInvoice `json:"extracted"`
	Editable  *domain.ExtractedInvoice `json:"editable"`
}

// Creating means the reviewed data is with the creation backend
type Creating struct {
	Extracted *domain.ExtractedInvoice `json:"extracted"`
	Editable  *domain.ExtractedInvoice `json:"editable"`
}

// Created holds the backend's summary of the invoice it created
type Created struct {
	Summary domain.CreatedInvoice `json:"summary"`
}

func (AwaitingUpload) Kind() Kind { return KindAwaitingUpload }
func (Processing) Kind() Kind     { return KindProcessing }
func (Reviewing) Kind() Kind      { return KindReviewing }
func (Creating) Kind() Kind       { return KindCreating }
func (Created) Kind() Kind        { return KindCreated }

func (AwaitingUpload) isState() {}
func (Processing) isState()     {}
func (Reviewing) isState()      {}
func (Creating) isState()       {}
func (Created) isState()        {}

// busy reports whether a backend call is in flight for the state
func busy(s State) bool {
	switch s.(type) {
	case Processing, Creating:
		return true
	}
	return false
}
