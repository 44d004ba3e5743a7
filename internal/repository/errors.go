// Package repository declares the persistence ports used by the use cases.
// Adapters live under internal/infra/adapter/persistence.
package repository

import "errors"

// ErrDuplicate is returned by Create/Update when a unique constraint
// (username, note slug) is violated.
var ErrDuplicate = errors.New("already exists")
