// Package stripeclient is a minimal Stripe REST client covering the two
// list endpoints the extract needs. Responses are decoded into loose
// shapes; the etl adapter owns mapping them into strict records.
package stripeclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/railzwaylabs/mrrboard/internal/config"
	"go.uber.org/zap"
)

type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	pageSize   int
	log        *zap.Logger
}

func New(cfg config.StripeConfig, log *zap.Logger) *Client {
	pageSize := cfg.PageSize
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 100
	}
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		pageSize:   pageSize,
		log:        log.Named("stripe.client"),
	}
}

// Customer may arrive either as a bare ID string or as an expanded object.
type Customer struct {
	ID    string  `json:"id"`
	Email *string `json:"email"`
	Name  *string `json:"name"`
}

func (c *Customer) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var id string
		if err := json.Unmarshal(data, &id); err != nil {
			return err
		}
		*c = Customer{ID: id}
		return nil
	}
	type alias Customer
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*c = Customer(a)
	return nil
}

type Recurring struct {
	Interval      string `json:"interval"`
	IntervalCount *int64 `json:"interval_count"`
}

type Price struct {
	ID         string     `json:"id"`
	Product    *string    `json:"product"`
	UnitAmount *int64     `json:"unit_amount"`
	Recurring  *Recurring `json:"recurring"`
}

type SubscriptionItem struct {
	Quantity *int64 `json:"quantity"`
	Price    *Price `json:"price"`
}

type Subscription struct {
	ID                 string    `json:"id"`
	Customer           *Customer `json:"customer"`
	Status             string    `json:"status"`
	Currency           *string   `json:"currency"`
	Created            *int64    `json:"created"`
	CurrentPeriodStart *int64    `json:"current_period_start"`
	CurrentPeriodEnd   *int64    `json:"current_period_end"`
	CanceledAt         *int64    `json:"canceled_at"`
	CancelAtPeriodEnd  bool      `json:"cancel_at_period_end"`
	EndedAt            *int64    `json:"ended_at"`
	TrialStart         *int64    `json:"trial_start"`
	TrialEnd           *int64    `json:"trial_end"`
	Items              struct {
		Data []SubscriptionItem `json:"data"`
	} `json:"items"`
}

type Invoice struct {
	ID                string  `json:"id"`
	Customer          *string `json:"customer"`
	Subscription      *string `json:"subscription"`
	Status            *string `json:"status"`
	AmountDue         *int64  `json:"amount_due"`
	AmountPaid        *int64  `json:"amount_paid"`
	Currency          *string `json:"currency"`
	PeriodStart       *int64  `json:"period_start"`
	PeriodEnd         *int64  `json:"period_end"`
	Created           *int64  `json:"created"`
	HostedInvoiceURL  *string `json:"hosted_invoice_url"`
	StatusTransitions struct {
		PaidAt *int64 `json:"paid_at"`
	} `json:"status_transitions"`
}

// ListSubscriptions pages through all subscriptions regardless of status,
// with customer and price objects expanded.
func (c *Client) ListSubscriptions(ctx context.Context) ([]Subscription, error) {
	params := url.Values{}
	params.Set("status", "all")
	params.Add("expand[]", "data.customer")
	params.Add("expand[]", "data.items.data.price")
	return listAll[Subscription](ctx, c, "/v1/subscriptions", params)
}

// ListInvoices pages through all invoices.
func (c *Client) ListInvoices(ctx context.Context) ([]Invoice, error) {
	return listAll[Invoice](ctx, c, "/v1/invoices", url.Values{})
}

type listPage[T any] struct {
	Data    []T  `json:"data"`
	HasMore bool `json:"has_more"`
}

func listAll[T any](ctx context.Context, c *Client, path string, params url.Values) ([]T, error) {
	var all []T
	startingAfter := ""
	for {
		page, lastID, err := listOnce[T](ctx, c, path, params, startingAfter)
		if err != nil {
			return nil, err
		}
		all = append(all, page.Data...)
		if !page.HasMore || lastID == "" {
			c.log.Debug("stripe list complete", zap.String("path", path), zap.Int("count", len(all)))
			return all, nil
		}
		startingAfter = lastID
	}
}

func listOnce[T any](ctx context.Context, c *Client, path string, base url.Values, startingAfter string) (listPage[T], string, error) {
	params := url.Values{}
	for k, vs := range base {
		params[k] = vs
	}
	params.Set("limit", strconv.Itoa(c.pageSize))
	if startingAfter != "" {
		params.Set("starting_after", startingAfter)
	}

	var page listPage[T]
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return page, "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return page, "", fmt.Errorf("stripe request %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return page, "", err
	}
	if resp.StatusCode != http.StatusOK {
		return page, "", fmt.Errorf("stripe %s returned %d: %s", path, resp.StatusCode, truncate(body, 200))
	}

	if err := json.Unmarshal(body, &page); err != nil {
		return page, "", fmt.Errorf("decode stripe %s response: %w", path, err)
	}

	lastID := ""
	if len(page.Data) > 0 {
		var tail struct {
			Data []struct {
				ID string `json:"id"`
			} `json:"data"`
		}
		if err := json.Unmarshal(body, &tail); err == nil && len(tail.Data) > 0 {
			lastID = tail.Data[len(tail.Data)-1].ID
		}
	}
	return page, lastID, nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
