// Package query serves read-only food catalog requests.
package query

import (
	"context"

	"github.com/code19m/errx"
	"github.com/rise-and-shine/foodcatalog/internal/food"
	"github.com/rise-and-shine/foodcatalog/sorter"
)

// Repository is the read side of the record store.
type Repository interface {
	FindByID(ctx context.Context, id string) (*food.Food, error)
	FindMany(ctx context.Context, filter food.Filter) ([]food.Food, error)
}

// ListInput carries the raw list query parameters.
type ListInput struct {
	Category  string `query:"category"`
	Available string `query:"available"`
	Sort      string `query:"sort"`
}

// ListResult is a page-less list of records.
type ListResult struct {
	Items []food.Food
	Count int
}

// GetInput identifies a single record.
type GetInput struct {
	ID string `params:"id" validate:"required"`
}

// Facade translates request parameters into repository queries.
type Facade struct {
	repo Repository
}

// New creates a Facade.
func New(repo Repository) *Facade {
	return &Facade{repo: repo}
}

// List returns records matching the category (exact match) and availability
// filters, newest first unless sort says otherwise. Empty parameters impose no
// constraint; unknown sort fields are ignored.
func (f *Facade) List(ctx context.Context, in ListInput) (*ListResult, error) {
	items, err := f.repo.FindMany(ctx, toFilter(in))
	if err != nil {
		return nil, errx.Wrap(err)
	}
	if items == nil {
		items = []food.Food{}
	}

	return &ListResult{Items: items, Count: len(items)}, nil
}

// GetByID returns a record or a not found error.
func (f *Facade) GetByID(ctx context.Context, id string) (*food.Food, error) {
	rec, err := f.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errx.Wrap(err)
	}
	return rec, nil
}

func toFilter(in ListInput) food.Filter {
	var filter food.Filter

	if in.Category != "" {
		category := in.Category
		filter.Category = &category
	}
	if in.Available != "" {
		available := food.ParseQueryBool(in.Available)
		filter.Available = &available
	}
	filter.Sort = sorter.MakeFromStr(in.Sort, food.SortableFields...).OrDefault(food.DefaultSort)

	return filter
}
