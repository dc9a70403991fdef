package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrNotFound is returned when a row addressed by id does not exist.
var ErrNotFound = errors.New("record not found")

// OperationError wraps a failure reported by the underlying store.
type OperationError struct {
	Op  string
	Err error
}

func (e *OperationError) Error() string {
	return fmt.Sprintf("operation failed: %s: %v", e.Op, e.Err)
}

func (e *OperationError) Unwrap() error { return e.Err }

func opErr(op string, err error) error {
	if err == nil {
		return nil
	}
	return &OperationError{Op: op, Err: err}
}

// Row is a record keyed by physical column name.
type Row map[string]interface{}

// Filter matches rows whose Column equals Value.
type Filter struct {
	Column string
	Value  interface{}
}

// InFilter matches rows whose Column is one of Values.
type InFilter struct {
	Column string
	Values []interface{}
}

// Order sorts by Column.
type Order struct {
	Column string
	Desc   bool
}

// Query selects rows from a single table.
type Query struct {
	Table   string
	Filters []Filter
	In      []InFilter
	Order   []Order
	Limit   int
}

// Key returns a canonical string describing q, suitable for cache keys.
func (q Query) Key() string {
	var sb strings.Builder
	filters := make([]string, 0, len(q.Filters))
	for _, f := range q.Filters {
		filters = append(filters, fmt.Sprintf("%s=%v", f.Column, f.Value))
	}
	sort.Strings(filters)
	sb.WriteString(strings.Join(filters, "&"))
	for _, in := range q.In {
		fmt.Fprintf(&sb, "|%s~%v", in.Column, in.Values)
	}
	for _, o := range q.Order {
		dir := "asc"
		if o.Desc {
			dir = "desc"
		}
		fmt.Fprintf(&sb, "|%s:%s", o.Column, dir)
	}
	if q.Limit > 0 {
		fmt.Fprintf(&sb, "|limit=%d", q.Limit)
	}
	return sb.String()
}

// Store is the generic table access used by every journal repository.
// Tables and columns are always supplied by the caller.
type Store interface {
	Select(ctx context.Context, q Query) ([]Row, error)
	// Insert writes row and returns the stored row, located by idColumn.
	Insert(ctx context.Context, table, idColumn string, row Row) (Row, error)
	// Update sets the given columns on rows matching every filter and
	// returns the number of rows changed.
	Update(ctx context.Context, table string, set Row, filters ...Filter) (int64, error)
	// Transaction runs fn against a store bound to a single transaction.
	Transaction(ctx context.Context, fn func(tx Store) error) error
	// Lock serializes writers on key until the surrounding transaction ends.
	Lock(ctx context.Context, key string) error
}

// NewStore creates a gorm-backed Store.
func NewStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

type gormStore struct {
	db *gorm.DB
}

func (s *gormStore) Select(ctx context.Context, q Query) ([]Row, error) {
	tx := s.db.WithContext(ctx).Table(q.Table)
	for _, f := range q.Filters {
		tx = tx.Where(clause.Eq{Column: clause.Column{Name: f.Column}, Value: f.Value})
	}
	for _, in := range q.In {
		if len(in.Values) == 0 {
			return []Row{}, nil
		}
		tx = tx.Where(clause.IN{Column: clause.Column{Name: in.Column}, Values: in.Values})
	}
	for _, o := range q.Order {
		tx = tx.Order(clause.OrderByColumn{Column: clause.Column{Name: o.Column}, Desc: o.Desc})
	}
	if q.Limit > 0 {
		tx = tx.Limit(q.Limit)
	}

	var records []map[string]interface{}
	if err := tx.Find(&records).Error; err != nil {
		return nil, opErr("select "+q.Table, err)
	}
	rows := make([]Row, 0, len(records))
	for _, r := range records {
		rows = append(rows, normalizeRow(r))
	}
	return rows, nil
}

func (s *gormStore) Insert(ctx context.Context, table, idColumn string, row Row) (Row, error) {
	if len(row) == 0 {
		return nil, opErr("insert "+table, errors.New("empty row"))
	}
	tx := s.db.WithContext(ctx)

	cols := make([]string, 0, len(row))
	for c := range row {
		cols = append(cols, c)
	}
	sort.Strings(cols)

	quoted := make([]string, len(cols))
	placeholders := make([]string, len(cols))
	values := make([]interface{}, len(cols))
	for i, c := range cols {
		quoted[i] = tx.Statement.Quote(c)
		placeholders[i] = "?"
		values[i] = row[c]
	}
	stmt := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING %s",
		tx.Statement.Quote(table),
		strings.Join(quoted, ", "),
		strings.Join(placeholders, ", "),
		tx.Statement.Quote(idColumn))

	var id int64
	if err := tx.Raw(stmt, values...).Scan(&id).Error; err != nil {
		return nil, opErr("insert "+table, err)
	}

	rows, err := s.Select(ctx, Query{Table: table, Filters: []Filter{{Column: idColumn, Value: id}}, Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, opErr("insert "+table, ErrNotFound)
	}
	return rows[0], nil
}

func (s *gormStore) Update(ctx context.Context, table string, set Row, filters ...Filter) (int64, error) {
	if len(filters) == 0 {
		return 0, opErr("update "+table, errors.New("update without filter"))
	}
	tx := s.db.WithContext(ctx).Table(table)
	for _, f := range filters {
		tx = tx.Where(clause.Eq{Column: clause.Column{Name: f.Column}, Value: f.Value})
	}
	res := tx.Updates(map[string]interface{}(set))
	if res.Error != nil {
		return 0, opErr("update "+table, res.Error)
	}
	return res.RowsAffected, nil
}

func (s *gormStore) Transaction(ctx context.Context, fn func(tx Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormStore{db: tx})
	})
}

func (s *gormStore) Lock(ctx context.Context, key string) error {
	if s.db.Dialector.Name() != "postgres" {
		return nil
	}
	return opErr("lock "+key, s.db.WithContext(ctx).Exec("SELECT pg_advisory_xact_lock(hashtext(?))", key).Error)
}

// normalizeRow turns driver byte slices into strings so rows survive JSON encoding.
func normalizeRow(r map[string]interface{}) Row {
	out := make(Row, len(r))
	for k, v := range r {
		if b, ok := v.([]byte); ok {
			out[k] = string(b)
			continue
		}
		out[k] = v
	}
	return out
}
