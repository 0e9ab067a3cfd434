// Package food holds the food catalog domain: the record model, typed inputs,
// value coercion and the error codes shared by the repository, the lifecycle
// manager and the HTTP layer.
package food

import (
	"github.com/rise-and-shine/foodcatalog/pg"
	"github.com/rise-and-shine/foodcatalog/sorter"
	"github.com/samber/lo"
	"github.com/uptrace/bun"
)

// Column names.
const (
	ColID          = "id"
	ColName        = "name"
	ColDescription = "description"
	ColPrice       = "price"
	ColCategory    = "category"
	ColImageURL    = "image_url"
	ColAvailable   = "available"
	ColCreatedAt   = "created_at"
	ColUpdatedAt   = "updated_at"
)

// SortableFields lists the columns a list can be ordered by.
var SortableFields = []string{ //nolint:gochecknoglobals // read-only allow-list
	ColName, ColPrice, ColCategory, ColCreatedAt, ColUpdatedAt,
}

// DefaultSort orders newest records first.
var DefaultSort = sorter.Opt{F: ColCreatedAt, D: sorter.Desc} //nolint:gochecknoglobals // constant value

// Food is a catalog entry.
type Food struct {
	bun.BaseModel `bun:"table:foods,alias:f" json:"-"`

	ID          string  `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id"`
	Name        string  `bun:"name,notnull"                              json:"name"`
	Description *string `bun:"description"                               json:"description"`
	Price       float64 `bun:"price,type:numeric(10,2),notnull"          json:"price"`
	Category    string  `bun:"category,notnull"                          json:"category"`
	ImageURL    *string `bun:"image_url"                                 json:"image_url"`
	// no bun default here: a false value must be written as false, not DEFAULT
	Available bool `bun:"available,notnull" json:"available"`

	pg.Timestamps
}

// HasImage reports whether the record references an image.
func (f *Food) HasImage() bool {
	return f.ImageURL != nil && *f.ImageURL != ""
}

// StagedFile is an upload already saved to the file store but not yet
// referenced by any record. A nil *StagedFile means no upload.
type StagedFile struct {
	Filename string
}

// Filter narrows list queries. Nil fields impose no constraint.
type Filter struct {
	ID        *string
	Category  *string
	Available *bool
	Sort      sorter.SortOpts
}

// Patch is a partial update: only the columns set through its setters are written.
type Patch struct {
	values  Food
	columns []string
}

func (p *Patch) set(col string) {
	if !lo.Contains(p.columns, col) {
		p.columns = append(p.columns, col)
	}
}

func (p *Patch) SetName(v string) {
	p.values.Name = v
	p.set(ColName)
}

func (p *Patch) SetDescription(v *string) {
	p.values.Description = v
	p.set(ColDescription)
}

func (p *Patch) SetPrice(v float64) {
	p.values.Price = v
	p.set(ColPrice)
}

func (p *Patch) SetCategory(v string) {
	p.values.Category = v
	p.set(ColCategory)
}

func (p *Patch) SetAvailable(v bool) {
	p.values.Available = v
	p.set(ColAvailable)
}

func (p *Patch) SetImageURL(v *string) {
	p.values.ImageURL = v
	p.set(ColImageURL)
}

// Columns returns the set columns in the order they were first set.
func (p Patch) Columns() []string {
	return append([]string(nil), p.columns...)
}

// Values returns a record carrying the patched values; unset fields are zero.
func (p Patch) Values() Food {
	return p.values
}

// Has reports whether col was set.
func (p Patch) Has(col string) bool {
	return lo.Contains(p.columns, col)
}

// ApplyTo copies the set values onto rec.
func (p Patch) ApplyTo(rec *Food) {
	for _, col := range p.columns {
		switch col {
		case ColName:
			rec.Name = p.values.Name
		case ColDescription:
			rec.Description = p.values.Description
		case ColPrice:
			rec.Price = p.values.Price
		case ColCategory:
			rec.Category = p.values.Category
		case ColAvailable:
			rec.Available = p.values.Available
		case ColImageURL:
			rec.ImageURL = p.values.ImageURL
		}
	}
}
