package repositories

import (
	"context"
)

// TransactionManager runs fn inside a single store transaction. Repository calls made
// with the ctx passed to fn join that transaction. Returning an error rolls it back.
// Nested calls reuse the outer transaction.
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
