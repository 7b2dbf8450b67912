// Package models defines the core domain entities: quotes, session prices, and snapshots.
package models

// MarketState is the provider's raw session-state token. The empty string
// means the provider did not report one.
type MarketState string

const (
	MarketStatePre     MarketState = "PRE"
	MarketStateRegular MarketState = "REGULAR"
	MarketStatePost    MarketState = "POST"
)

// SessionPrice holds the pricing fields for one market session. Nil pointers
// mark fields the provider did not report; a present zero is a real value and
// must not collapse to absent.
type SessionPrice struct {
	Price         *float64 `json:"price,omitempty"`
	Change        *float64 `json:"change,omitempty"`
	ChangePercent *float64 `json:"change_percent,omitempty"`
}

// Quote is an immutable per-symbol snapshot at fetch time. Prices are in the
// instrument's native currency.
type Quote struct {
	Symbol         string       `json:"symbol"`
	Name           string       `json:"name"`
	CurrencySymbol string       `json:"currency_symbol,omitempty"`
	MarketState    MarketState  `json:"market_state,omitempty"`
	Pre            SessionPrice `json:"pre"`
	Regular        SessionPrice `json:"regular"`
	Post           SessionPrice `json:"post"`
}

// DefaultQuote returns the placeholder used for a symbol that has never been
// fetched successfully and has no cached predecessor.
func DefaultQuote(symbol string) Quote {
	return Quote{Symbol: symbol, Name: symbol}
}

// Session returns the pricing fields for the quote's own market state.
// Unknown and absent states fall back to the regular session.
func (q Quote) Session() SessionPrice {
	switch q.MarketState {
	case MarketStatePre:
		return q.Pre
	case MarketStatePost:
		return q.Post
	default:
		return q.Regular
	}
}

// Float returns a pointer to v, for building quotes with present fields.
func Float(v float64) *float64 {
	return &v
}
