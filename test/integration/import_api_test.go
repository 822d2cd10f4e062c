package integration

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/textproto"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSession mirrors the JSON session snapshot
type TestSession struct {
	ID         string          `json:"id"`
	State      string          `json:"state"`
	Error      string          `json:"error"`
	BusinessID string          `json:"business_id"`
	Businesses []TestBusiness  `json:"businesses"`
	Editable   *TestInvoice    `json:"editable"`
	Summary    *TestSummary    `json:"summary"`
	InvoiceURL string          `json:"invoice_url"`
	Options    []TestCustomers `json:"customer_options"`
}

// TestBusiness represents a business in the session snapshot
type TestBusiness struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// TestCustomers represents a customer select option
type TestCustomers struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// TestInvoice represents the extracted invoice under review
type TestInvoice struct {
	InvoiceNumber string `json:"invoice_number"`
	CustomerName  string `json:"customer_name"`
	LineItems     []struct {
		ProductName string `json:"product_name"`
		Unit        string `json:"unit"`
	} `json:"line_items"`
}

// TestSummary represents a created invoice summary
type TestSummary struct {
	InvoiceID     int64  `json:"invoice_id"`
	InvoiceNumber string `json:"invoice_number"`
}

type apiClient struct {
	t       *testing.T
	baseURL string
	http    *http.Client
}

func newAPIClient(t *testing.T) *apiClient {
	baseURL := os.Getenv("API_BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)

	c := &apiClient{
		t:       t,
		baseURL: baseURL,
		http: &http.Client{
			Timeout: 60 * time.Second,
			Jar:     jar,
		},
	}

	resp, err := c.http.Get(baseURL + "/health")
	if err != nil {
		t.Skipf("import frontend not reachable at %s: %v", baseURL, err)
	}
	resp.Body.Close()
	return c
}

func (c *apiClient) state() TestSession {
	resp, err := c.http.Get(c.baseURL + "/ai-invoice/state")
	require.NoError(c.t, err)
	defer resp.Body.Close()
	require.Equal(c.t, http.StatusOK, resp.StatusCode)

	var sess TestSession
	require.NoError(c.t, json.NewDecoder(resp.Body).Decode(&sess))
	return sess
}

func (c *apiClient) upload(filename, contentType string, data []byte) TestSession {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="image"; filename="`+filename+`"`)
	header.Set("Content-Type", contentType)
	part, err := w.CreatePart(header)
	require.NoError(c.t, err)
	_, err = part.Write(data)
	require.NoError(c.t, err)
	require.NoError(c.t, w.Close())

	req, err := http.NewRequest(http.MethodPost, c.baseURL+"/ai-invoice/process", &body)
	require.NoError(c.t, err)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	require.NoError(c.t, err)
	defer resp.Body.Close()
	respBody, _ := io.ReadAll(resp.Body)
	require.Equal(c.t, http.StatusOK, resp.StatusCode, string(respBody))

	var sess TestSession
	require.NoError(c.t, json.Unmarshal(respBody, &sess))
	return sess
}

func (c *apiClient) post(path string) *http.Response {
	req, err := http.NewRequest(http.MethodPost, c.baseURL+path, nil)
	require.NoError(c.t, err)
	req.Header.Set("Accept", "application/json")
	resp, err := c.http.Do(req)
	require.NoError(c.t, err)
	return resp
}

// TestImportAPI runs the import workflow against a running instance
func TestImportAPI(t *testing.T) {
	client := newAPIClient(t)

	t.Run("Health", func(t *testing.T) {
		resp, err := client.http.Get(client.baseURL + "/health")
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("SessionStarts", func(t *testing.T) {
		sess := client.state()
		assert.NotEmpty(t, sess.ID)
		assert.Equal(t, "awaiting_upload", sess.State)
		assert.Equal(t, sess.ID, client.state().ID, "cookie should keep the same session")
	})

	t.Run("RejectsUnsupportedImage", func(t *testing.T) {
		sess := client.upload("scan.gif", "image/gif", []byte("GIF89a"))
		assert.Equal(t, "awaiting_upload", sess.State)
		assert.Equal(t, "Please select a valid image file (JPEG, PNG, or WebP)", sess.Error)
	})

	t.Run("RejectsOversizedImage", func(t *testing.T) {
		sess := client.upload("big.png", "image/png", make([]byte, 10*1024*1024+1))
		assert.Equal(t, "File size too large. Please upload an image smaller than 10MB", sess.Error)
	})

	t.Run("CreateWithoutReviewIsRejected", func(t *testing.T) {
		resp := client.post("/ai-invoice/create")
		defer resp.Body.Close()
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
	})

	// Full extraction needs a real invoice image and a reachable billing backend
	imagePath := os.Getenv("TEST_INVOICE_IMAGE")
	if imagePath == "" {
		t.Log("TEST_INVOICE_IMAGE not set, skipping extraction round trip")
		return
	}

	t.Run("ExtractAndReset", func(t *testing.T) {
		if len(client.state().Businesses) == 0 {
			t.Skip("billing backend has no businesses")
		}

		data, err := os.ReadFile(imagePath)
		require.NoError(t, err)

		contentType := "image/jpeg"
		if filepath.Ext(imagePath) == ".png" {
			contentType = "image/png"
		}

		sess := client.upload(filepath.Base(imagePath), contentType, data)
		require.Empty(t, sess.Error)
		require.Equal(t, "reviewing", sess.State)
		require.NotNil(t, sess.Editable)
		for _, item := range sess.Editable.LineItems {
			assert.Contains(t, []string{"gm", "kg", "pcs", ""}, item.Unit)
		}

		resp := client.post("/ai-invoice/reset")
		defer resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "awaiting_upload", client.state().State)
	})
}
