package domain

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const extractedJSON = `{
  "invoice_number": "INV-42",
  "invoice_date": "2024-03-05",
  "customer_name": "Shree Traders",
  "customer_gst_number": "27AAAPL1234C1ZV",
  "customer_pan_number": null,
  "customer_mobile_number": "9876543210",
  "customer_address": "Pune",
  "total_amount": "1545.00",
  "line_items": [
    {"product_name": "Gold ring", "quantity": "10.500", "unit": "gm", "rate": "140.00", "hsn_code": "7113", "gst_tax_rate": "0.03", "amount": "1470.00"},
    {"product_name": "Box", "quantity": 1, "unit": "pcs", "rate": 75, "hsn_code": "4819", "gst_tax_rate": 0, "amount": 75}
  ]
}`

func TestExtractedInvoiceDecode(t *testing.T) {
	var inv ExtractedInvoice
	require.NoError(t, json.Unmarshal([]byte(extractedJSON), &inv))

	assert.Equal(t, "INV-42", inv.InvoiceNumber)
	assert.Equal(t, "2024-03-05", inv.InvoiceDate.String())
	assert.Equal(t, "", inv.CustomerPANNumber)
	assert.True(t, inv.TotalAmount.Equal(decimal.RequireFromString("1545")))
	require.Len(t, inv.LineItems, 2)
	assert.Equal(t, UnitGram, inv.LineItems[0].Unit)
	assert.True(t, inv.LineItems[0].Quantity.Equal(decimal.RequireFromString("10.5")))
	assert.True(t, inv.LineItems[1].Rate.Equal(decimal.NewFromInt(75)))
}

func TestDateOnly(t *testing.T) {
	t.Run("null_is_zero", func(t *testing.T) {
		var d DateOnly
		require.NoError(t, json.Unmarshal([]byte(`null`), &d))
		assert.True(t, d.IsZero())
	})

	t.Run("empty_is_zero", func(t *testing.T) {
		var d DateOnly
		require.NoError(t, json.Unmarshal([]byte(`""`), &d))
		assert.Equal(t, "", d.String())
	})

	t.Run("zero_marshals_to_null", func(t *testing.T) {
		b, err := json.Marshal(DateOnly{})
		require.NoError(t, err)
		assert.Equal(t, "null", string(b))
	})

	t.Run("other_format_kept_raw", func(t *testing.T) {
		var d DateOnly
		require.NoError(t, json.Unmarshal([]byte(`"15/03/2024"`), &d))
		assert.True(t, d.IsZero())
		assert.Equal(t, "", d.String())
		assert.Equal(t, "15/03/2024", d.Raw)

		b, err := json.Marshal(d)
		require.NoError(t, err)
		assert.Equal(t, `"15/03/2024"`, string(b))
	})

	t.Run("not_a_string", func(t *testing.T) {
		var d DateOnly
		assert.Error(t, json.Unmarshal([]byte(`20240315`), &d))
	})
}

func TestExtractedInvoiceDecodeLooseText(t *testing.T) {
	body := `{
  "invoice_number": 1042,
  "invoice_date": "15/03/2024",
  "customer_name": "Shree Traders",
  "customer_mobile_number": 9876543210,
  "customer_gst_number": null,
  "total_amount": 1470,
  "line_items": [
    {"product_name": "Gold ring", "quantity": 10.5, "unit": "gm", "rate": 140, "hsn_code": 7113, "gst_tax_rate": 0.03, "amount": 1470}
  ]
}`

	var inv ExtractedInvoice
	require.NoError(t, json.Unmarshal([]byte(body), &inv))

	assert.Equal(t, "1042", inv.InvoiceNumber)
	assert.Equal(t, "9876543210", inv.CustomerMobileNumber)
	assert.Equal(t, "", inv.CustomerGSTNumber)
	assert.Equal(t, "Shree Traders", inv.CustomerName)
	assert.Equal(t, "15/03/2024", inv.InvoiceDate.Raw)
	assert.Equal(t, "", inv.InvoiceDate.String())
	require.Len(t, inv.LineItems, 1)
	assert.Equal(t, "7113", inv.LineItems[0].HSNCode)
	assert.Equal(t, "Gold ring", inv.LineItems[0].ProductName)
	assert.True(t, inv.LineItems[0].Quantity.Equal(decimal.RequireFromString("10.5")))

	// the session store round trip keeps everything
	data, err := json.Marshal(inv)
	require.NoError(t, err)
	var again ExtractedInvoice
	require.NoError(t, json.Unmarshal(data, &again))
	assert.Equal(t, inv.InvoiceNumber, again.InvoiceNumber)
	assert.Equal(t, inv.InvoiceDate, again.InvoiceDate)
	assert.Equal(t, "7113", again.LineItems[0].HSNCode)
}

func TestExtractedInvoiceDecodeRejectsObjectsInText(t *testing.T) {
	var inv ExtractedInvoice
	assert.Error(t, json.Unmarshal([]byte(`{"customer_name": {"first": "A"}}`), &inv))
}

func TestExtractedInvoiceClone(t *testing.T) {
	var original ExtractedInvoice
	require.NoError(t, json.Unmarshal([]byte(extractedJSON), &original))

	cp := original.Clone()
	cp.CustomerName = "Someone Else"
	cp.LineItems[1].Rate = decimal.NewFromInt(99)

	assert.Equal(t, "Shree Traders", original.CustomerName)
	assert.True(t, original.LineItems[1].Rate.Equal(decimal.NewFromInt(75)))
	assert.True(t, cp.LineItems[0].Rate.Equal(original.LineItems[0].Rate))

	var nilInvoice *ExtractedInvoice
	assert.Nil(t, nilInvoice.Clone())
}
