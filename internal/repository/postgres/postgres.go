// Package postgres implements the repository interfaces on database/sql with the pgx stdlib driver.
package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"reviewapi/internal/repository"
)

const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

type rowScanner interface {
	Scan(dest ...any) error
}

// pgtype.Map is not safe for concurrent use.
var typeMaps = sync.Pool{New: func() any { return pgtype.NewMap() }}

// textArray scans a text[] column into a non-nil []string.
type textArray struct {
	dst *[]string
}

func (a textArray) Scan(src any) error {
	m := typeMaps.Get().(*pgtype.Map)
	defer typeMaps.Put(m)

	if err := m.SQLScanner(a.dst).Scan(src); err != nil {
		return err
	}
	if *a.dst == nil {
		*a.dst = []string{}
	}
	return nil
}

// IsNoRowsError reports whether err means the row was not found.
func IsNoRowsError(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// mapError translates driver errors into repository errors.
func mapError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case uniqueViolation:
		return repository.ErrDuplicate
	case foreignKeyViolation:
		return fmt.Errorf("%w: %s", repository.ErrReferenced, pgErr.ConstraintName)
	}
	return err
}

// containsPattern builds an ILIKE pattern matching s anywhere; empty input disables the filter.
func containsPattern(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	return "%" + likeEscaper.Replace(s) + "%"
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// arrayArg never hands NULL to a NOT NULL text[] column.
func arrayArg(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// optionalArrayArg maps an absent partial-update field to SQL NULL.
func optionalArrayArg(s *[]string) any {
	if s == nil {
		return nil
	}
	return arrayArg(*s)
}

func collect[T any](rows *sql.Rows, scan func(rowScanner) (*T, error)) ([]T, error) {
	defer rows.Close()

	items := make([]T, 0)
	for rows.Next() {
		it, err := scan(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
