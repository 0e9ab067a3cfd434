// Package sorter parses "field:direction" sort strings, e.g. "price:asc,created_at:desc",
// into ordered options restricted to an allow-list of fields.
package sorter

import (
	"slices"
	"strings"
)

type (
	SortOpts []Opt

	SortDirection string
)

const (
	Asc  SortDirection = "asc"
	Desc SortDirection = "desc"

	fieldDirParts = 2
)

// Opt is a single sort option.
type Opt struct {
	F string        // column name
	D SortDirection // asc or desc
}

// MakeFromStr parses sortString keeping only options whose field is in allowedFields
// and whose direction is asc or desc (case-insensitive). Invalid pairs are skipped.
// A field listed twice is kept at its first position.
func MakeFromStr(sortString string, allowedFields ...string) SortOpts {
	var opts SortOpts
	for pair := range strings.SplitSeq(sortString, ",") {
		field, dir, ok := strings.Cut(pair, ":")
		if !ok {
			continue
		}

		field = strings.TrimSpace(field)
		if !slices.Contains(allowedFields, field) || opts.Has(field) {
			continue
		}

		d := SortDirection(strings.ToLower(strings.TrimSpace(dir)))
		if d != Asc && d != Desc {
			continue
		}

		opts = append(opts, Opt{F: field, D: d})
	}

	return opts
}

// Make creates SortOpts from the given options.
func Make(opts ...Opt) SortOpts {
	return opts
}

// Has reports whether the field is already present.
func (s SortOpts) Has(field string) bool {
	return slices.ContainsFunc(s, func(o Opt) bool { return o.F == field })
}

// OrDefault returns s, or def when s is empty.
func (s SortOpts) OrDefault(def ...Opt) SortOpts {
	if len(s) == 0 {
		return def
	}
	return s
}

// ToSQL renders the option as an ORDER BY item, e.g. "price asc".
func (o Opt) ToSQL() string {
	return o.F + " " + string(o.D)
}
