// Package view renders the invoice import pages.
package view

import (
	"embed"
	"fmt"
	"html/template"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/ridwanfathin/ai-invoice-import/internal/domain"
	"github.com/ridwanfathin/ai-invoice-import/internal/model"
	"github.com/ridwanfathin/ai-invoice-import/internal/workflow"
)

// PageTemplate is the name of the import page template
const PageTemplate = "import.html"

//go:embed templates/*.html
var templateFS embed.FS

// Templates parses the embedded page templates
func Templates() (*template.Template, error) {
	tmpl, err := template.New("").Funcs(Funcs()).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return tmpl, nil
}

// Funcs returns the helpers available to the page templates
func Funcs() template.FuncMap {
	return template.FuncMap{
		"displayUnit": domain.DisplayUnit,
		"rateSuffix":  domain.RateSuffix,
		"units":       domain.Units,
		"number":      formatNumber,
		"money":       formatMoney,
		"fieldName":   lineItemFieldName,
		"idString": func(id int64) string {
			return strconv.FormatInt(id, 10)
		},
	}
}

// Page is the data the import page is rendered from
type Page struct {
	Session         *workflow.Session
	State           workflow.Kind
	Busy            bool
	Error           string
	Filename        string
	Invoice         *domain.ExtractedInvoice
	CustomerOptions []workflow.CustomerOption
	Summary         *domain.CreatedInvoice
	InvoiceURL      string
	AcceptTypes     string
}

// NewPage builds the page data of a session
func NewPage(sess *workflow.Session, viewURL string) Page {
	page := Page{
		Session:     sess,
		State:       sess.Kind(),
		Error:       sess.Error,
		Invoice:     sess.Editable(),
		Summary:     sess.Summary(),
		AcceptTypes: "image/jpeg,image/jpg,image/png,image/webp",
	}

	switch st := sess.State.(type) {
	case workflow.Processing:
		page.Busy = true
		page.Filename = st.Filename
	case workflow.Creating:
		page.Busy = true
	}

	if page.Invoice != nil {
		page.CustomerOptions = workflow.CustomerOptions(sess)
	}
	if page.Summary != nil {
		page.InvoiceURL = model.InvoiceURL(viewURL, page.Summary.InvoiceID)
	}
	return page
}

// ShowUpload reports whether the upload form is shown
func (p Page) ShowUpload() bool {
	switch p.State {
	case workflow.KindAwaitingUpload, workflow.KindReviewing, workflow.KindCreated:
		return true
	}
	return false
}

// formatNumber renders a form value, leaving zero blank so the placeholder shows
func formatNumber(d decimal.Decimal) string {
	if d.IsZero() {
		return ""
	}
	return d.String()
}

func formatMoney(d decimal.Decimal) string {
	return d.String()
}

func lineItemFieldName(index int, field string) string {
	return "line_items[" + strconv.Itoa(index) + "][" + field + "]"
}
