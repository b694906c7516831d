package txn

import "context"

// Manager runs fn inside one unit of work. The transaction travels in the
// context handed to fn; a nested call joins it. Any error rolls it back.
type Manager interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
