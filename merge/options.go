package merge

import (
	"fmt"
	"log/slog"

	"github.com/arloliu/dictmerge/errs"
	"github.com/arloliu/dictmerge/internal/options"
	"github.com/arloliu/dictmerge/memory"
)

// DefaultWorkers is the number of columns merged concurrently unless WithWorkers is given.
const DefaultWorkers = 4

// Option configures a Merger.
type Option = options.Option[*Merger]

// WithAllocator sets the allocator for transpose maps, canonical dictionaries,
// transposed codes and decoded fragments. A nil allocator means memory.DefaultAllocator.
//
// The allocator is shared by concurrent column merges and must be safe for
// concurrent use; GoAllocator and LimitedAllocator are.
func WithAllocator(alloc memory.Allocator) Option {
	return options.NoError(func(m *Merger) {
		if alloc == nil {
			alloc = memory.DefaultAllocator
		}
		m.alloc = alloc
	})
}

// WithLogger sets the logger. Column merges are logged at Debug level and
// failures at Warn level.
func WithLogger(logger *slog.Logger) Option {
	return options.New(func(m *Merger) error {
		if logger == nil {
			return fmt.Errorf("%w: nil logger", errs.ErrInvalid)
		}
		m.logger = logger

		return nil
	})
}

// WithWorkers sets how many columns MergeTable merges, and how many fragments
// MergeFragments decodes, at the same time.
func WithWorkers(n int) Option {
	return options.New(func(m *Merger) error {
		if n < 1 {
			return fmt.Errorf("%w: workers must be at least 1, got %d", errs.ErrInvalid, n)
		}
		m.workers = n

		return nil
	})
}
