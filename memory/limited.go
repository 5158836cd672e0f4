package memory

import (
	"fmt"
	"sync/atomic"

	"golang.org/x/sync/semaphore"

	"github.com/arloliu/dictmerge/errs"
	"github.com/arloliu/dictmerge/internal/options"
)

// LimitedAllocator enforces a hard byte budget on top of a parent allocator.
//
// Requests that would push the outstanding total past the limit fail immediately with
// errs.ErrOutOfMemory; the allocator never blocks or retries. Memory is returned to the
// budget when the slice is passed to Free (which Buffer.Release does).
type LimitedAllocator struct {
	parent Allocator
	limit  int64
	sem    *semaphore.Weighted
	used   atomic.Int64
	peak   atomic.Int64
}

var _ Allocator = (*LimitedAllocator)(nil)

// LimitedOption configures a LimitedAllocator.
type LimitedOption = options.Option[*LimitedAllocator]

// WithParent sets the allocator that actually provides memory.
// Defaults to DefaultAllocator.
func WithParent(parent Allocator) LimitedOption {
	return options.New(func(a *LimitedAllocator) error {
		if parent == nil {
			return fmt.Errorf("%w: nil parent allocator", errs.ErrInvalid)
		}
		a.parent = parent

		return nil
	})
}

// NewLimitedAllocator creates an allocator that refuses to hold more than limitBytes at once.
//
// Parameters:
//   - limitBytes: Maximum outstanding bytes (must be positive)
//   - opts: Optional configuration (WithParent)
//
// Returns:
//   - *LimitedAllocator: The allocator
//   - error: errs.ErrInvalid if limitBytes is not positive or an option fails
func NewLimitedAllocator(limitBytes int64, opts ...LimitedOption) (*LimitedAllocator, error) {
	if limitBytes <= 0 {
		return nil, fmt.Errorf("%w: memory limit must be positive, got %d", errs.ErrInvalid, limitBytes)
	}

	a := &LimitedAllocator{
		parent: DefaultAllocator,
		limit:  limitBytes,
		sem:    semaphore.NewWeighted(limitBytes),
	}
	if err := options.Apply(a, opts...); err != nil {
		return nil, err
	}

	return a, nil
}

// Allocate reserves size bytes from the budget and allocates them from the parent.
func (a *LimitedAllocator) Allocate(size int) ([]byte, error) {
	if size <= 0 {
		return a.parent.Allocate(size)
	}

	n := int64(size)
	if !a.sem.TryAcquire(n) {
		return nil, fmt.Errorf("%w: allocating %d bytes with %d of %d in use",
			errs.ErrOutOfMemory, size, a.used.Load(), a.limit)
	}

	b, err := a.parent.Allocate(size)
	if err != nil {
		a.sem.Release(n)
		return nil, err
	}

	used := a.used.Add(n)
	for {
		peak := a.peak.Load()
		if used <= peak || a.peak.CompareAndSwap(peak, used) {
			break
		}
	}

	return b, nil
}

// Free returns b's bytes to the budget and hands b back to the parent.
func (a *LimitedAllocator) Free(b []byte) {
	if len(b) == 0 {
		return
	}

	n := int64(len(b))
	a.used.Add(-n)
	a.sem.Release(n)
	a.parent.Free(b)
}

// Allocated returns the number of bytes currently outstanding.
func (a *LimitedAllocator) Allocated() int64 {
	return a.used.Load()
}

// Peak returns the highest number of bytes outstanding at any one time.
func (a *LimitedAllocator) Peak() int64 {
	return a.peak.Load()
}

// Limit returns the configured byte budget.
func (a *LimitedAllocator) Limit() int64 {
	return a.limit
}
