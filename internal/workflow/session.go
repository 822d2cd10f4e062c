package workflow

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/ridwanfathin/ai-invoice-import/internal/domain"
)

// Session is the import workflow of one browser
type Session struct {
	ID         string
	State      State
	Businesses []domain.Business
	BusinessID string
	Customers  []domain.Customer
	// CustomerFetch is bumped on every business change; a customer list is
	// only applied if it was fetched under the current value.
	CustomerFetch uint64
	Error         string
	UpdatedAt     time.Time
}

// Kind returns the kind of the current state
func (s *Session) Kind() Kind {
	if s.State == nil {
		return KindAwaitingUpload
	}
	return s.State.Kind()
}

// Editable returns the working copy under review, or nil
func (s *Session) Editable() *domain.ExtractedInvoice {
	switch st := s.State.(type) {
	case Reviewing:
		return st.Editable
	case Creating:
		return st.Editable
	}
	return nil
}

// Extracted returns the unmodified extraction result, or nil
func (s *Session) Extracted() *domain.ExtractedInvoice {
	switch st := s.State.(type) {
	case Reviewing:
		return st.Extracted
	case Creating:
		return st.Extracted
	}
	return nil
}

// Summary returns the created invoice summary when the state is Created
func (s *Session) Summary() *domain.CreatedInvoice {
	if st, ok := s.State.(Created); ok {
		summary := st.Summary
		return &summary
	}
	return nil
}

type sessionJSON struct {
	ID            string            `json:"id"`
	StateKind     Kind              `json:"state_kind"`
	State         json.RawMessage   `json:"state,omitempty"`
	Businesses    []domain.Business `json:"businesses"`
	BusinessID    string            `json:"business_id"`
	Customers     []domain.Customer `json:"customers"`
	CustomerFetch uint64            `json:"customer_fetch"`
	Error         string            `json:"error,omitempty"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

// MarshalJSON encodes the state variant next to its kind
func (s Session) MarshalJSON() ([]byte, error) {
	state := s.State
	if state == nil {
		state = AwaitingUpload{}
	}
	raw, err := json.Marshal(state)
	if err != nil {
		return nil, err
	}
	return json.Marshal(sessionJSON{
		ID:            s.ID,
		StateKind:     state.Kind(),
		State:         raw,
		Businesses:    s.Businesses,
		BusinessID:    s.BusinessID,
		Customers:     s.Customers,
		CustomerFetch: s.CustomerFetch,
		Error:         s.Error,
		UpdatedAt:     s.UpdatedAt,
	})
}

// UnmarshalJSON decodes the state variant named by state_kind
func (s *Session) UnmarshalJSON(b []byte) error {
	var raw sessionJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	state, err := decodeState(raw.StateKind, raw.State)
	if err != nil {
		return err
	}

	*s = Session{
		ID:            raw.ID,
		State:         state,
		Businesses:    raw.Businesses,
		BusinessID:    raw.BusinessID,
		Customers:     raw.Customers,
		CustomerFetch: raw.CustomerFetch,
		Error:         raw.Error,
		UpdatedAt:     raw.UpdatedAt,
	}
	return nil
}

func decodeState(kind Kind, data json.RawMessage) (State, error) {
	var err error
	switch kind {
	case KindAwaitingUpload, "":
		return AwaitingUpload{}, nil
	case KindProcessing:
		var st Processing
		err = unmarshalState(data, &st)
		return st, err
	case KindReviewing:
		var st Reviewing
		err = unmarshalState(data, &st)
		return st, err
	case KindCreating:
		var st Creating
		err = unmarshalState(data, &st)
		return st, err
	case KindCreated:
		var st Created
		err = unmarshalState(data, &st)
		return st, err
	}
	return nil, fmt.Errorf("unknown workflow state %q", kind)
}

func unmarshalState(data json.RawMessage, v interface{}) error {
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, v)
}
