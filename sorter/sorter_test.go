package sorter_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rise-and-shine/foodcatalog/sorter"
)

func TestMakeFromStr(t *testing.T) {
	allowed := []string{"name", "price", "created_at"}

	tests := []struct {
		name     string
		in       string
		expected sorter.SortOpts
	}{
		{name: "empty", in: "", expected: nil},
		{
			name:     "single",
			in:       "price:asc",
			expected: sorter.Make(sorter.Opt{F: "price", D: sorter.Asc}),
		},
		{
			name: "multiple keep order",
			in:   "price:desc,name:asc",
			expected: sorter.Make(
				sorter.Opt{F: "price", D: sorter.Desc},
				sorter.Opt{F: "name", D: sorter.Asc},
			),
		},
		{
			name:     "unknown field dropped",
			in:       "calories:asc,created_at:desc",
			expected: sorter.Make(sorter.Opt{F: "created_at", D: sorter.Desc}),
		},
		{
			name:     "bad direction dropped",
			in:       "price:up,name:DESC",
			expected: sorter.Make(sorter.Opt{F: "name", D: sorter.Desc}),
		},
		{
			name:     "missing colon dropped",
			in:       "price_asc,name:asc",
			expected: sorter.Make(sorter.Opt{F: "name", D: sorter.Asc}),
		},
		{
			name:     "whitespace and empty parts",
			in:       ", , price : ASC ,,",
			expected: sorter.Make(sorter.Opt{F: "price", D: sorter.Asc}),
		},
		{
			name:     "duplicate field keeps first",
			in:       "price:asc,price:desc",
			expected: sorter.Make(sorter.Opt{F: "price", D: sorter.Asc}),
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, sorter.MakeFromStr(tc.in, allowed...))
		})
	}
}

func TestSortOpts_OrDefault(t *testing.T) {
	def := sorter.Opt{F: "created_at", D: sorter.Desc}

	assert.Equal(t, sorter.SortOpts{def}, sorter.MakeFromStr("bogus", "name").OrDefault(def))

	explicit := sorter.Make(sorter.Opt{F: "name", D: sorter.Asc})
	assert.Equal(t, explicit, explicit.OrDefault(def))
}

func TestOpt_ToSQL(t *testing.T) {
	assert.Equal(t, "price asc", sorter.Opt{F: "price", D: sorter.Asc}.ToSQL())
	assert.Equal(t, "created_at desc", sorter.Opt{F: "created_at", D: sorter.Desc}.ToSQL())
}
