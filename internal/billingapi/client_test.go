package billingapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ridwanfathin/ai-invoice-import/internal/domain"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(&Config{BaseURL: srv.URL + "/api/", Token: "secret", Timeout: 5 * time.Second})
}

func TestProcessInvoiceImage(t *testing.T) {
	image := []byte("\x89PNG\r\n\x1a\nfake")

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/ai/invoice/process/", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))

		require.NoError(t, r.ParseMultipartForm(1<<20))
		file, header, err := r.FormFile("image")
		require.NoError(t, err)
		defer file.Close()
		got, err := io.ReadAll(file)
		require.NoError(t, err)
		assert.Equal(t, image, got)
		assert.Equal(t, "bill.png", header.Filename)
		assert.Equal(t, "image/png", header.Header.Get("Content-Type"))

		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"data": {"invoice_number": "INV-7", "total_amount": "210.00",
			"line_items": [{"product_name": "Silver", "quantity": "2", "unit": "kg", "rate": "100", "amount": "200"}]}}`)
	})

	inv, err := client.ProcessInvoiceImage(context.Background(), domain.Upload{
		Filename:    "bill.png",
		ContentType: "image/png",
		Size:        int64(len(image)),
		Data:        image,
	})
	require.NoError(t, err)
	assert.Equal(t, "INV-7", inv.InvoiceNumber)
	require.Len(t, inv.LineItems, 1)
	assert.Equal(t, domain.UnitKilo, inv.LineItems[0].Unit)
	assert.True(t, inv.TotalAmount.Equal(decimal.RequireFromString("210")))
}

func TestProcessInvoiceImageErrors(t *testing.T) {
	testCases := []struct {
		name            string
		status          int
		body            string
		expectedMessage string
		expectedStatus  int
	}{
		{
			name:            "structured_error_message",
			status:          http.StatusBadRequest,
			body:            `{"error": "Could not read invoice from image"}`,
			expectedMessage: "Could not read invoice from image",
			expectedStatus:  http.StatusBadRequest,
		},
		{
			name:           "plain_text_error",
			status:         http.StatusBadGateway,
			body:           `upstream down`,
			expectedStatus: http.StatusBadGateway,
		},
		{
			name:           "success_without_data",
			status:         http.StatusOK,
			body:           `{}`,
			expectedStatus: 0,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				io.WriteString(w, tc.body)
			})

			inv, err := client.ProcessInvoiceImage(context.Background(), domain.Upload{Data: []byte("x")})
			assert.Nil(t, inv)

			var apiErr *APIError
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, "process_invoice_image", apiErr.Op)
			assert.Equal(t, tc.expectedMessage, apiErr.Message)
			assert.Equal(t, tc.expectedStatus, apiErr.StatusCode)
		})
	}
}

func TestCreateInvoice(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/ai/invoice/create/", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var payload struct {
			BusinessID  string          `json:"business_id"`
			InvoiceData json.RawMessage `json:"invoice_data"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "3", payload.BusinessID)

		var inv domain.ExtractedInvoice
		require.NoError(t, json.Unmarshal(payload.InvoiceData, &inv))
		assert.Equal(t, "Acme", inv.CustomerName)

		w.WriteHeader(http.StatusCreated)
		io.WriteString(w, `{"invoice_id": 91, "invoice_number": "INV-7", "customer_name": "Acme", "line_items_created": 2, "total_amount": "420.50"}`)
	})

	created, err := client.CreateInvoice(context.Background(), "3", &domain.ExtractedInvoice{CustomerName: "Acme"})
	require.NoError(t, err)
	assert.Equal(t, int64(91), created.InvoiceID)
	assert.Equal(t, 2, created.LineItemsCreated)
	assert.Equal(t, "420.5", created.TotalAmount.String())
}

func TestListCustomers(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/customers/", r.URL.Path)
		assert.Equal(t, "5", r.URL.Query().Get("business_id"))
		assert.Equal(t, "1000", r.URL.Query().Get("limit"))
		io.WriteString(w, `{"count": 1, "results": [{"id": 1, "name": "Acme", "gst_number": null}]}`)
	})

	customers, err := client.ListCustomers(context.Background(), "5")
	require.NoError(t, err)
	require.Len(t, customers, 1)
	assert.Equal(t, "Acme", customers[0].Name)
}

func TestListBusinesses(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/businesses/", r.URL.Path)
		io.WriteString(w, `{"count": 2, "results": [{"id": 1, "name": "Alpha"}, {"id": 2, "name": "Beta"}]}`)
	})

	businesses, err := client.ListBusinesses(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []domain.Business{{ID: 1, Name: "Alpha"}, {ID: 2, Name: "Beta"}}, businesses)
}

func TestClientTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	client := NewClient(&Config{BaseURL: srv.URL})
	_, err := client.ListBusinesses(context.Background())

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, 0, apiErr.StatusCode)
	assert.Empty(t, apiErr.Message)
	assert.Contains(t, err.Error(), "failed to send request")
}
