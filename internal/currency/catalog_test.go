package currency

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	tests := []struct {
		name   string
		code   string
		wantOK bool
	}{
		{"service currency", "USD", true},
		{"euro", "EUR", true},
		{"unknown code", "ZZZ", false},
		{"lower case is not matched", "usd", false},
		{"empty", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := Default().Lookup(tt.code)
			assert.Equal(t, tt.wantOK, ok)
			if !ok {
				assert.Equal(t, -1, id)
			}
		})
	}
}

func TestDefaultContainsServiceCurrency(t *testing.T) {
	assert.True(t, Default().Contains(ServiceCurrency))
}

func TestEntriesReturnsCopy(t *testing.T) {
	c := NewCatalog("USD", "EUR")

	entries := c.Entries()
	require.Len(t, entries, 2)
	entries[0].Code = "ZZZ"

	_, ok := c.Lookup("ZZZ")
	assert.False(t, ok)
	id, ok := c.Lookup("EUR")
	assert.True(t, ok)
	assert.Equal(t, 1, id)
}
