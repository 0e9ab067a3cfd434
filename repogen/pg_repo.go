package repogen

import (
	"context"
	"fmt"
	"reflect"

	"github.com/code19m/errx"
	"github.com/rise-and-shine/foodcatalog/pg"
	"github.com/uptrace/bun"
)

const (
	CodeObjectNotFound = "OBJECT_NOT_FOUND"
	CodeStoreError     = "STORE_ERROR"

	codeMultipleRowsFound = "MULTIPLE_ROWS_FOUND"
)

var _ Repo[struct{}, struct{}] = (*PgRepo[struct{}, struct{}])(nil)

// PgRepo implements Repo on PostgreSQL using bun.
type PgRepo[E any, F any] struct {
	idb          bun.IDB
	schemaName   string
	entityName   string
	notFoundCode string
	storeCode    string

	// conflictCodes maps constraint names to error codes, e.g. "foods_price_check" -> "INVALID_PRICE".
	conflictCodes map[string]string

	filterFunc func(q *bun.SelectQuery, filters F) *bun.SelectQuery
}

// PgRepoBuilder builds a PgRepo with sensible defaults.
type PgRepoBuilder[E any, F any] struct {
	repo *PgRepo[E, F]
}

// NewPgRepoBuilder creates a builder using schema "public" and the generic error codes.
func NewPgRepoBuilder[E any, F any](idb bun.IDB) *PgRepoBuilder[E, F] {
	return &PgRepoBuilder[E, F]{repo: &PgRepo[E, F]{
		idb:           idb,
		schemaName:    "public",
		entityName:    nameOf(new(E)),
		notFoundCode:  CodeObjectNotFound,
		storeCode:     CodeStoreError,
		conflictCodes: map[string]string{},
		filterFunc:    func(q *bun.SelectQuery, _ F) *bun.SelectQuery { return q },
	}}
}

// WithSchemaName sets the schema name.
func (b *PgRepoBuilder[E, F]) WithSchemaName(name string) *PgRepoBuilder[E, F] {
	b.repo.schemaName = name
	return b
}

// WithEntityName sets the name used in error messages.
func (b *PgRepoBuilder[E, F]) WithEntityName(name string) *PgRepoBuilder[E, F] {
	b.repo.entityName = name
	return b
}

// WithNotFoundCode sets the error code for not found errors.
func (b *PgRepoBuilder[E, F]) WithNotFoundCode(code string) *PgRepoBuilder[E, F] {
	b.repo.notFoundCode = code
	return b
}

// WithStoreCode sets the error code attached to unexpected database failures.
func (b *PgRepoBuilder[E, F]) WithStoreCode(code string) *PgRepoBuilder[E, F] {
	b.repo.storeCode = code
	return b
}

// WithConflictCode maps a violated constraint to a validation error code.
func (b *PgRepoBuilder[E, F]) WithConflictCode(constraint, code string) *PgRepoBuilder[E, F] {
	b.repo.conflictCodes[constraint] = code
	return b
}

// WithFilterFunc sets the filter function.
func (b *PgRepoBuilder[E, F]) WithFilterFunc(
	fn func(q *bun.SelectQuery, filters F) *bun.SelectQuery,
) *PgRepoBuilder[E, F] {
	b.repo.filterFunc = fn
	return b
}

// Build returns the configured PgRepo.
func (b *PgRepoBuilder[E, F]) Build() *PgRepo[E, F] {
	return b.repo
}

func (r *PgRepo[E, F]) Get(ctx context.Context, filters F) (*E, error) {
	var entities = make([]E, 0)
	q := r.idb.NewSelect().Model(&entities).Limit(2) //nolint:mnd // limit 2 to detect multiple rows
	q = r.applySelectTableExpr(q)
	q = r.filterFunc(q, filters)

	err := q.Scan(ctx)
	if err != nil {
		return nil, r.wrapErr(err, q)
	}

	if len(entities) == 0 {
		return nil, r.notFound(q)
	}

	if len(entities) > 1 {
		return nil, errx.New(
			fmt.Sprintf("multiple %s found", r.entityName),
			errx.WithCode(codeMultipleRowsFound),
			errx.WithType(errx.T_Internal),
			errx.WithDetails(pg.GetPgErrorDetails(nil, q)),
		)
	}

	return &entities[0], nil
}

func (r *PgRepo[E, F]) List(ctx context.Context, filters F) ([]E, error) {
	var entities = make([]E, 0)
	q := r.idb.NewSelect().Model(&entities)
	q = r.applySelectTableExpr(q)
	q = r.filterFunc(q, filters)

	err := q.Scan(ctx)
	if err != nil {
		return nil, r.wrapErr(err, q)
	}

	return entities, nil
}

func (r *PgRepo[E, F]) Create(ctx context.Context, entity *E) (*E, error) {
	q := r.idb.NewInsert().Model(entity).Returning("*")
	q = q.ModelTableExpr(r.tableExpr(q.GetModel()))

	_, err := q.Exec(ctx)
	if err != nil {
		return nil, r.wrapErr(err, q)
	}

	return entity, nil
}

func (r *PgRepo[E, F]) UpdateColumns(ctx context.Context, entity *E, columns ...string) (*E, error) {
	q := r.idb.NewUpdate().Model(entity).Column(columns...).WherePK().Returning("*")
	q = q.ModelTableExpr(r.tableExpr(q.GetModel()))

	result, err := q.Exec(ctx)
	if err != nil {
		return nil, r.wrapErr(err, q)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, r.wrapErr(err, q)
	}

	if rowsAffected == 0 {
		return nil, r.notFound(q)
	}

	return entity, nil
}

func (r *PgRepo[E, F]) Delete(ctx context.Context, entity *E) error {
	q := r.idb.NewDelete().Model(entity).WherePK()
	q = q.ModelTableExpr(r.tableExpr(q.GetModel()))

	result, err := q.Exec(ctx)
	if err != nil {
		return r.wrapErr(err, q)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return r.wrapErr(err, q)
	}

	if rowsAffected == 0 {
		return r.notFound(q)
	}

	return nil
}

func (r *PgRepo[E, F]) notFound(q fmt.Stringer) error {
	return errx.New(
		fmt.Sprintf("%s not found", r.entityName),
		errx.WithCode(r.notFoundCode),
		errx.WithType(errx.T_NotFound),
		errx.WithDetails(pg.GetPgErrorDetails(nil, q)),
	)
}

// wrapErr classifies a database error: known constraint violations become validation
// errors, malformed keys become not found, everything else is a store error.
func (r *PgRepo[E, F]) wrapErr(err error, q fmt.Stringer) error {
	details := pg.GetPgErrorDetails(err, q)

	if code, ok := r.conflictCodes[pg.ConstraintName(err)]; ok && (pg.IsCheckViolation(err) || pg.IsConflict(err)) {
		return errx.Wrap(err,
			errx.WithCode(code),
			errx.WithType(errx.T_Validation),
			errx.WithDetails(details),
		)
	}

	if pg.IsInvalidInput(err) {
		return errx.Wrap(err,
			errx.WithCode(r.notFoundCode),
			errx.WithType(errx.T_NotFound),
			errx.WithDetails(details),
		)
	}

	return errx.Wrap(err,
		errx.WithCode(r.storeCode),
		errx.WithType(errx.T_Internal),
		errx.WithDetails(details),
	)
}

func (r *PgRepo[E, F]) applySelectTableExpr(q *bun.SelectQuery) *bun.SelectQuery {
	return q.ModelTableExpr(r.tableExpr(q.GetModel()))
}

func (r *PgRepo[E, F]) tableExpr(model bun.Model) (string, bun.Ident, bun.Ident, bun.Ident) {
	table := model.(bun.TableModel).Table() //nolint:errcheck // models are always table models
	return "?.? AS ?", bun.Ident(r.schemaName), bun.Ident(table.Name), bun.Ident(table.Alias)
}

func nameOf(v any) string {
	t := reflect.TypeOf(v)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Name()
}
