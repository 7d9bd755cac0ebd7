package wallpaper

import (
	"fmt"
	"strings"
)

// Market identifies a locale/region variant of the feed.
type Market struct {
	ID          string
	DisplayName string
}

// String returns "DisplayName (ID)".
func (m Market) String() string {
	if m.DisplayName == "" || m.DisplayName == m.ID {
		return m.ID
	}
	return fmt.Sprintf("%s (%s)", m.DisplayName, m.ID)
}

// MarketCatalog is the ordered list of configured markets for one run.
type MarketCatalog struct {
	markets []Market
}

// NewMarketCatalog builds a catalog, keeping configured order.
func NewMarketCatalog(markets []Market) (*MarketCatalog, error) {
	c := &MarketCatalog{markets: make([]Market, 0, len(markets))}
	for i, m := range markets {
		id := strings.TrimSpace(m.ID)
		if id == "" {
			return nil, fmt.Errorf("market #%d has an empty id", i+1)
		}
		c.markets = append(c.markets, Market{ID: id, DisplayName: strings.TrimSpace(m.DisplayName)})
	}
	return c, nil
}

// Markets returns a copy of the catalog in configured order.
func (c *MarketCatalog) Markets() []Market {
	out := make([]Market, len(c.markets))
	copy(out, c.markets)
	return out
}

// Len returns the number of markets.
func (c *MarketCatalog) Len() int {
	return len(c.markets)
}
