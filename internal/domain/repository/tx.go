package repository

import "context"

// Transactor runs a function inside a single database transaction. Every
// repository call made with the context it passes to fn joins that
// transaction; if fn returns an error the whole unit of work rolls back.
type Transactor interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}
