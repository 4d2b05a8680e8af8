// Package currency holds the fixed set of currencies an account may choose as
// its default. The catalog is built once at package initialisation and never
// mutated afterwards.
package currency

// Code is a currency's symbolic code, e.g. "USD".
type Code string

// ServiceCurrency is assigned to accounts that do not choose a currency.
const ServiceCurrency Code = "USD"

// Entry is one supported currency. ID is only used for membership tests.
type Entry struct {
	Code Code
	ID   int
}

// Catalog is an immutable lookup table of supported currencies.
type Catalog struct {
	entries []Entry
}

// NewCatalog builds a catalog from codes; IDs follow declaration order.
func NewCatalog(codes ...Code) *Catalog {
	entries := make([]Entry, len(codes))
	for i, code := range codes {
		entries[i] = Entry{Code: code, ID: i}
	}
	return &Catalog{entries: entries}
}

var defaultCatalog = NewCatalog(
	"USD", "EUR", "GBP", "CHF", "JPY", "CAD",
	"AUD", "CNY", "SEK", "NOK", "DKK", "PLN",
)

// Default returns the process-wide catalog.
func Default() *Catalog { return defaultCatalog }

// Lookup returns the id of code, or false when the code is not supported.
// Matching is exact: "usd" is not "USD".
func (c *Catalog) Lookup(code string) (int, bool) {
	for _, e := range c.entries {
		if string(e.Code) == code {
			return e.ID, true
		}
	}
	return -1, false
}

// Contains reports whether code is in the catalog.
func (c *Catalog) Contains(code Code) bool {
	_, ok := c.Lookup(string(code))
	return ok
}

// Entries returns a copy of the catalog's entries.
func (c *Catalog) Entries() []Entry {
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}
