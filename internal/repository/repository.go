// Package repository declares the persistence interfaces of the review platform.
// The postgres subpackage implements them with plain SQL; implementations report
// a missing row as sql.ErrNoRows, a unique violation as ErrDuplicate and a
// foreign key violation as ErrReferenced.
package repository

import "errors"

var (
	ErrDuplicate = errors.New("duplicate key")
	// ErrReferenced means a written row points at a parent row that does not exist.
	ErrReferenced = errors.New("referenced row does not exist")
)

// PageQuery is a LIMIT/OFFSET window.
type PageQuery struct {
	Limit  int
	Offset int
}

// PageResult carries one window of rows plus the unwindowed row count.
type PageResult[T any] struct {
	Items []T
	Total int
}
