// Package menubar renders snapshots as xbar/SwiftBar plugin text, the line
// protocol consumed by menu-bar hosts. Each item carries an href action that
// opens the provider's page for its symbol.
package menubar

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"stockbar/internal/format"
	"stockbar/internal/models"
)

// quoteURLTemplate is the fixed details page for a symbol.
const quoteURLTemplate = "https://finance.yahoo.com/quote/%s"

// QuoteURL returns the provider's public web page for a symbol.
func QuoteURL(symbol string) string {
	return fmt.Sprintf(quoteURLTemplate, symbol)
}

// sessionGroups fixes the section order of the rendered menu. States outside
// the three known sessions (including absent) collapse into "Closed".
var sessionGroups = []struct {
	state models.MarketState
	label string
}{
	{models.MarketStatePre, "Pre-Market"},
	{models.MarketStateRegular, "Market Open"},
	{models.MarketStatePost, "After Hours"},
	{"", "Closed"},
}

// Renderer writes the menu for the display surface, either to a writer
// (stdout) or atomically to a file a menu-bar host watches.
type Renderer struct {
	title string
	path  string
	out   io.Writer
}

// NewRenderer creates a renderer writing to the file at path, or to out when
// path is empty.
func NewRenderer(title, path string, out io.Writer) *Renderer {
	return &Renderer{title: title, path: path, out: out}
}

// Render writes the menu for the given snapshot and loading state.
func (r *Renderer) Render(snapshot models.Snapshot, loading bool) error {
	text := r.Format(snapshot, loading)
	if r.path == "" {
		_, err := io.WriteString(r.out, text)
		return err
	}
	return writeFileAtomic(r.path, text)
}

// Format builds the plugin text for a snapshot. The header shows the
// configured title, with an ellipsis while a slow refresh is in flight.
func (r *Renderer) Format(snapshot models.Snapshot, loading bool) string {
	var b strings.Builder

	b.WriteString(r.title)
	if loading {
		b.WriteString("…")
	}
	b.WriteString("\n---\n")

	for _, group := range sessionGroups {
		var lines []string
		for _, q := range snapshot.Quotes {
			if groupState(q.MarketState) != group.state {
				continue
			}
			lines = append(lines, fmt.Sprintf("%s | href=%s", itemTitle(q), QuoteURL(q.Symbol)))
		}
		if len(lines) == 0 {
			continue
		}
		b.WriteString(group.label)
		b.WriteString("\n")
		for _, line := range lines {
			b.WriteString(line)
			b.WriteString("\n")
		}
	}

	if snapshot.LastUpdated != nil {
		b.WriteString("---\n")
		fmt.Fprintf(&b, "Updated %s\n", snapshot.LastUpdated.Format("15:04:05"))
	}
	return b.String()
}

func groupState(state models.MarketState) models.MarketState {
	switch state {
	case models.MarketStatePre, models.MarketStateRegular, models.MarketStatePost:
		return state
	default:
		return ""
	}
}

// itemTitle renders one quote line, e.g. "Spotify: $123.45 (+1.23%, +0.45)".
// The currency symbol prefixes the price only when both are known.
func itemTitle(q models.Quote) string {
	session := q.Session()
	price := format.Price(session)
	if q.CurrencySymbol != "" && session.Price != nil {
		price = q.CurrencySymbol + price
	}
	return fmt.Sprintf("%s: %s", q.Name, price)
}

// writeFileAtomic replaces path via a temp file rename so the menu-bar host
// never reads a half-written menu.
func writeFileAtomic(path, text string) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".menu-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(text); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write menu: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to replace menu file: %w", err)
	}
	return nil
}
