package billingapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/ridwanfathin/ai-invoice-import/internal/domain"
)

// customerPageLimit matches the page size the import page asks for
const customerPageLimit = "1000"

type page[T any] struct {
	Count   int `json:"count"`
	Results []T `json:"results"`
}

// ListBusinesses returns the businesses invoices can be created under
func (c *Client) ListBusinesses(ctx context.Context) ([]domain.Business, error) {
	const op = "list_businesses"

	req, err := c.newRequest(ctx, http.MethodGet, "/businesses/", nil, "")
	if err != nil {
		return nil, &APIError{Op: op, Err: fmt.Errorf("failed to create request: %w", err)}
	}

	var resp page[domain.Business]
	if err := c.do(op, req, &resp); err != nil {
		return nil, err
	}
	return resp.Results, nil
}

// ListCustomers returns the customers of a business
func (c *Client) ListCustomers(ctx context.Context, businessID string) ([]domain.Customer, error) {
	const op = "list_customers"

	query := url.Values{}
	query.Set("business_id", businessID)
	query.Set("limit", customerPageLimit)

	req, err := c.newRequest(ctx, http.MethodGet, "/customers/?"+query.Encode(), nil, "")
	if err != nil {
		return nil, &APIError{Op: op, Err: fmt.Errorf("failed to create request: %w", err)}
	}

	var resp page[domain.Customer]
	if err := c.do(op, req, &resp); err != nil {
		return nil, err
	}
	return resp.Results, nil
}
