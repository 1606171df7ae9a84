package contracts

import "context"

// TransactionManager runs fn as one atomic unit of work: every repository
// write made through the context passed to fn commits or aborts together.
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
