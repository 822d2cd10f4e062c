package workflow

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ridwanfathin/ai-invoice-import/internal/domain"
)

// Edit changes one field of the invoice under review.
// Item is the line item index, or -1 for invoice level fields.
type Edit struct {
	Item  int
	Field string
	Value string
}

// InvoiceEdit returns an edit of an invoice level field
func InvoiceEdit(field, value string) Edit {
	return Edit{Item: -1, Field: field, Value: value}
}

// LineItemEdit returns an edit of a field of the line item at index
func LineItemEdit(index int, field, value string) Edit {
	return Edit{Item: index, Field: field, Value: value}
}

func applyEdit(inv *domain.ExtractedInvoice, e Edit) error {
	var err error
	if e.Item < 0 {
		err = applyInvoiceEdit(inv, e.Field, e.Value)
	} else if e.Item >= len(inv.LineItems) {
		err = ErrLineItemIndex
	} else {
		err = applyLineItemEdit(&inv.LineItems[e.Item], e.Field, e.Value)
	}
	if err != nil {
		return &EditError{Field: e.Field, Item: e.Item, Err: err}
	}
	return nil
}

func applyInvoiceEdit(inv *domain.ExtractedInvoice, field, value string) error {
	switch field {
	case "invoice_number":
		inv.InvoiceNumber = value
	case "invoice_date":
		value = strings.TrimSpace(value)
		if value == "" && inv.InvoiceDate.IsZero() {
			// an empty date input leaves a detected date in another format alone
			return nil
		}
		date, err := domain.ParseDateOnly(value)
		if err != nil {
			return err
		}
		inv.InvoiceDate = date
	case "customer_name":
		inv.CustomerName = value
	case "customer_gst_number":
		inv.CustomerGSTNumber = value
	case "customer_pan_number":
		inv.CustomerPANNumber = value
	case "customer_mobile_number":
		inv.CustomerMobileNumber = value
	case "customer_address":
		inv.CustomerAddress = value
	case "total_amount":
		return ErrReadOnlyField
	default:
		return ErrUnknownField
	}
	return nil
}

func applyLineItemEdit(item *domain.LineItem, field, value string) error {
	switch field {
	case "product_name":
		item.ProductName = value
	case "quantity":
		item.Quantity = parseNumber(value)
	case "unit":
		unit := domain.Unit(strings.TrimSpace(value)).OrDefault()
		if !unit.Valid() {
			return ErrUnknownUnit
		}
		item.Unit = unit
	case "rate":
		item.Rate = parseNumber(value)
	case "hsn_code":
		item.HSNCode = value
	case "gst_tax_rate":
		item.GSTTaxRate = parseNumber(value)
	case "amount":
		return ErrReadOnlyField
	default:
		return ErrUnknownField
	}
	return nil
}

// parseNumber reads a numeric form value; anything unparsable counts as zero
func parseNumber(value string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(value))
	if err != nil {
		return decimal.Zero
	}
	return d
}

func itoa(i int) string {
	return strconv.Itoa(i)
}
