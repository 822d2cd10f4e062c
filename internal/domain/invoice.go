package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

// DateOnly is a custom type for handling date-only strings from JSON.
// Raw keeps a date the backend sent in any other format; Time is zero then.
type DateOnly struct {
	time.Time
	Raw string
}

// ParseDateOnly parses a YYYY-MM-DD string; an empty string yields the zero date
func ParseDateOnly(s string) (DateOnly, error) {
	if s == "" {
		return DateOnly{}, nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return DateOnly{}, err
	}
	return DateOnly{Time: t}, nil
}

// String formats the date as YYYY-MM-DD, or "" for the zero date
func (d DateOnly) String() string {
	if d.Time.IsZero() {
		return ""
	}
	return d.Time.Format(dateLayout)
}

// UnmarshalJSON implements custom unmarshaling for date-only strings
func (d *DateOnly) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		d.Time = time.Time{}
		return nil
	}

	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}

	parsed, err := ParseDateOnly(s)
	if err != nil {
		*d = DateOnly{Raw: s}
		return nil
	}
	*d = parsed
	return nil
}

// MarshalJSON implements custom marshaling for date-only strings
func (d DateOnly) MarshalJSON() ([]byte, error) {
	if d.Time.IsZero() {
		if d.Raw != "" {
			return json.Marshal(d.Raw)
		}
		return []byte("null"), nil
	}
	return json.Marshal(d.Time.Format(dateLayout))
}

// LineItem is one product row of an extracted invoice.
// Amount is computed by the backend and never derived here.
type LineItem struct {
	ProductName string          `json:"product_name"`
	Quantity    decimal.Decimal `json:"quantity" swaggertype:"string"`
	Unit        Unit            `json:"unit"`
	Rate        decimal.Decimal `json:"rate" swaggertype:"string"`
	HSNCode     string          `json:"hsn_code"`
	GSTTaxRate  decimal.Decimal `json:"gst_tax_rate" swaggertype:"string"`
	Amount      decimal.Decimal `json:"amount" swaggertype:"string"`
}

// UnmarshalJSON accepts numbers in the text fields
func (li *LineItem) UnmarshalJSON(b []byte) error {
	type plain LineItem
	aux := struct {
		*plain
		ProductName looseString `json:"product_name"`
		HSNCode     looseString `json:"hsn_code"`
	}{plain: (*plain)(li)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	li.ProductName = string(aux.ProductName)
	li.HSNCode = string(aux.HSNCode)
	return nil
}

// ExtractedInvoice is the structured data the AI backend returns for an invoice image
type ExtractedInvoice struct {
	InvoiceNumber        string          `json:"invoice_number"`
	InvoiceDate          DateOnly        `json:"invoice_date" swaggertype:"string" format:"date"`
	CustomerName         string          `json:"customer_name"`
	CustomerGSTNumber    string          `json:"customer_gst_number"`
	CustomerPANNumber    string          `json:"customer_pan_number"`
	CustomerMobileNumber string          `json:"customer_mobile_number"`
	CustomerAddress      string          `json:"customer_address"`
	TotalAmount          decimal.Decimal `json:"total_amount" swaggertype:"string"`
	LineItems            []LineItem      `json:"line_items"`
}

// UnmarshalJSON accepts numbers in the text fields
func (inv *ExtractedInvoice) UnmarshalJSON(b []byte) error {
	type plain ExtractedInvoice
	aux := struct {
		*plain
		InvoiceNumber        looseString `json:"invoice_number"`
		CustomerName         looseString `json:"customer_name"`
		CustomerGSTNumber    looseString `json:"customer_gst_number"`
		CustomerPANNumber    looseString `json:"customer_pan_number"`
		CustomerMobileNumber looseString `json:"customer_mobile_number"`
		CustomerAddress      looseString `json:"customer_address"`
	}{plain: (*plain)(inv)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	inv.InvoiceNumber = string(aux.InvoiceNumber)
	inv.CustomerName = string(aux.CustomerName)
	inv.CustomerGSTNumber = string(aux.CustomerGSTNumber)
	inv.CustomerPANNumber = string(aux.CustomerPANNumber)
	inv.CustomerMobileNumber = string(aux.CustomerMobileNumber)
	inv.CustomerAddress = string(aux.CustomerAddress)
	return nil
}

// looseString is text that may arrive as a JSON string, number or boolean
type looseString string

func (s *looseString) UnmarshalJSON(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()

	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return err
	}

	switch t := v.(type) {
	case nil:
		*s = ""
	case string:
		*s = looseString(t)
	case json.Number:
		*s = looseString(t.String())
	case bool:
		*s = looseString(strconv.FormatBool(t))
	default:
		return fmt.Errorf("cannot read %s as text", b)
	}
	return nil
}

// Clone returns a structurally independent copy of the invoice
func (inv *ExtractedInvoice) Clone() *ExtractedInvoice {
	if inv == nil {
		return nil
	}
	cp := *inv
	if inv.LineItems != nil {
		cp.LineItems = make([]LineItem, len(inv.LineItems))
		copy(cp.LineItems, inv.LineItems)
	}
	return &cp
}

// CreatedInvoice summarizes an invoice the backend created from extracted data
type CreatedInvoice struct {
	InvoiceID        int64           `json:"invoice_id"`
	InvoiceNumber    string          `json:"invoice_number"`
	CustomerName     string          `json:"customer_name"`
	LineItemsCreated int             `json:"line_items_created"`
	TotalAmount      decimal.Decimal `json:"total_amount" swaggertype:"string"`
}

// Upload is an invoice image selected by the user
type Upload struct {
	Filename    string
	ContentType string
	Size        int64
	Data        []byte
}
