// Package repo is the PostgreSQL repository of food records.
package repo

import (
	"context"
	"strings"

	"github.com/code19m/errx"
	"github.com/google/uuid"
	"github.com/rise-and-shine/foodcatalog/internal/food"
	"github.com/rise-and-shine/foodcatalog/repogen"
	"github.com/uptrace/bun"
)

const constraintPriceCheck = "foods_price_check"

// Repo provides CRUD access to the foods table.
type Repo struct {
	base *repogen.PgRepo[food.Food, food.Filter]
}

// New creates a Repo on top of idb (a *bun.DB or a bun.Tx).
func New(idb bun.IDB) *Repo {
	return &Repo{
		base: repogen.NewPgRepoBuilder[food.Food, food.Filter](idb).
			WithEntityName("food").
			WithNotFoundCode(food.CodeFoodNotFound).
			WithStoreCode(food.CodeStoreError).
			WithConflictCode(constraintPriceCheck, food.CodeInvalidPrice).
			WithFilterFunc(applyFilter).
			Build(),
	}
}

func (r *Repo) Create(ctx context.Context, rec *food.Food) (*food.Food, error) {
	created, err := r.base.Create(ctx, rec)
	return created, errx.Wrap(err)
}

// FindByID returns the record or a FOOD_NOT_FOUND error.
// Ids that are not uuids cannot exist and are reported as not found.
func (r *Repo) FindByID(ctx context.Context, id string) (*food.Food, error) {
	if !isUUID(id) {
		return nil, food.ErrNotFound(id)
	}

	rec, err := r.base.Get(ctx, food.Filter{ID: &id})
	return rec, errx.Wrap(err)
}

// FindMany lists records matching the filter, newest first unless the filter sorts otherwise.
func (r *Repo) FindMany(ctx context.Context, filter food.Filter) ([]food.Food, error) {
	items, err := r.base.List(ctx, filter)
	return items, errx.Wrap(err)
}

// Update writes only the patched columns and returns the full updated record.
func (r *Repo) Update(ctx context.Context, id string, patch food.Patch) (*food.Food, error) {
	if !isUUID(id) {
		return nil, food.ErrNotFound(id)
	}

	rec := patch.Values()
	rec.ID = id
	columns := append(patch.Columns(), food.ColUpdatedAt)

	updated, err := r.base.UpdateColumns(ctx, &rec, columns...)
	return updated, errx.Wrap(err)
}

func (r *Repo) Delete(ctx context.Context, id string) error {
	if !isUUID(id) {
		return food.ErrNotFound(id)
	}

	return errx.Wrap(r.base.Delete(ctx, &food.Food{ID: id}))
}

func applyFilter(q *bun.SelectQuery, f food.Filter) *bun.SelectQuery {
	if f.ID != nil {
		q = q.Where("?TableAlias.? = ?", bun.Ident(food.ColID), *f.ID)
	}
	if f.Category != nil {
		q = q.Where("?TableAlias.? = ?", bun.Ident(food.ColCategory), *f.Category)
	}
	if f.Available != nil {
		q = q.Where("?TableAlias.? = ?", bun.Ident(food.ColAvailable), *f.Available)
	}

	for _, o := range f.Sort.OrDefault(food.DefaultSort) {
		q = q.OrderExpr("?TableAlias.? "+strings.ToUpper(string(o.D)), bun.Ident(o.F))
	}
	return q
}

func isUUID(id string) bool {
	return uuid.Validate(id) == nil
}
