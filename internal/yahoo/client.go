// Package yahoo fetches per-symbol pricing data from the Yahoo Finance
// quoteSummary API and normalizes it into the flat quote shape.
package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"stockbar/internal/models"
)

const DefaultBaseURL = "https://query1.finance.yahoo.com"

// Client provides access to the Yahoo Finance quoteSummary API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new Yahoo Finance client. An empty baseURL selects the
// public endpoint.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// number is a numeric field in the quoteSummary payload. Yahoo wraps most
// numerics in a {"raw": …, "fmt": …} envelope but occasionally emits a bare
// number; both decode to the same presence-preserving pointer.
type number struct {
	Raw *float64
}

func (n *number) UnmarshalJSON(data []byte) error {
	var envelope struct {
		Raw *float64 `json:"raw"`
	}
	if err := json.Unmarshal(data, &envelope); err == nil {
		n.Raw = envelope.Raw
		return nil
	}
	var bare float64
	if err := json.Unmarshal(data, &bare); err != nil {
		return fmt.Errorf("failed to parse numeric field: %w", err)
	}
	n.Raw = &bare
	return nil
}

// priceModule is the "price" module of a quoteSummary response.
type priceModule struct {
	ShortName                  string  `json:"shortName"`
	CurrencySymbol             string  `json:"currencySymbol"`
	MarketState                string  `json:"marketState"`
	PreMarketPrice             *number `json:"preMarketPrice"`
	PreMarketChange            *number `json:"preMarketChange"`
	PreMarketChangePercent     *number `json:"preMarketChangePercent"`
	RegularMarketPrice         *number `json:"regularMarketPrice"`
	RegularMarketChange        *number `json:"regularMarketChange"`
	RegularMarketChangePercent *number `json:"regularMarketChangePercent"`
	PostMarketPrice            *number `json:"postMarketPrice"`
	PostMarketChange           *number `json:"postMarketChange"`
	PostMarketChangePercent    *number `json:"postMarketChangePercent"`
}

type quoteSummaryResponse struct {
	QuoteSummary struct {
		Result []struct {
			Price *priceModule `json:"price"`
		} `json:"result"`
		Error *apiError `json:"error"`
	} `json:"quoteSummary"`
}

type apiError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// Quote fetches and normalizes pricing data for one symbol. Network failures,
// provider error payloads, and responses without a price module are all
// returned as errors; the caller decides how to degrade.
func (c *Client) Quote(ctx context.Context, symbol string) (models.Quote, error) {
	u, err := url.Parse(c.baseURL + "/v10/finance/quoteSummary/" + url.PathEscape(symbol))
	if err != nil {
		return models.Quote{}, fmt.Errorf("failed to parse URL: %w", err)
	}
	q := u.Query()
	q.Set("modules", "price")
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return models.Quote{}, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "stockbar/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return models.Quote{}, fmt.Errorf("failed to fetch quote for %s: %w", symbol, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return models.Quote{}, fmt.Errorf("unexpected status %d for %s", resp.StatusCode, symbol)
	}

	var payload quoteSummaryResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return models.Quote{}, fmt.Errorf("failed to decode quote for %s: %w", symbol, err)
	}
	if apiErr := payload.QuoteSummary.Error; apiErr != nil {
		return models.Quote{}, fmt.Errorf("provider error for %s: %s: %s", symbol, apiErr.Code, apiErr.Description)
	}
	if len(payload.QuoteSummary.Result) == 0 || payload.QuoteSummary.Result[0].Price == nil {
		return models.Quote{}, fmt.Errorf("no price data for %s", symbol)
	}

	return normalize(symbol, payload.QuoteSummary.Result[0].Price), nil
}

// normalize flattens the nested price module into a Quote. Absence is
// decided by field presence alone; a reported value of exactly zero stays a
// present zero.
func normalize(symbol string, p *priceModule) models.Quote {
	name := p.ShortName
	if name == "" {
		name = symbol
	}
	return models.Quote{
		Symbol:         symbol,
		Name:           name,
		CurrencySymbol: p.CurrencySymbol,
		MarketState:    models.MarketState(p.MarketState),
		Pre: models.SessionPrice{
			Price:         value(p.PreMarketPrice),
			Change:        value(p.PreMarketChange),
			ChangePercent: value(p.PreMarketChangePercent),
		},
		Regular: models.SessionPrice{
			Price:         value(p.RegularMarketPrice),
			Change:        value(p.RegularMarketChange),
			ChangePercent: value(p.RegularMarketChangePercent),
		},
		Post: models.SessionPrice{
			Price:         value(p.PostMarketPrice),
			Change:        value(p.PostMarketChange),
			ChangePercent: value(p.PostMarketChangePercent),
		},
	}
}

func value(n *number) *float64 {
	if n == nil || n.Raw == nil {
		return nil
	}
	v := *n.Raw
	return &v
}
