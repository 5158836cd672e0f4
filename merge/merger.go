package merge

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/arloliu/dictmerge/array"
	"github.com/arloliu/dictmerge/dictionary"
	"github.com/arloliu/dictmerge/errs"
	"github.com/arloliu/dictmerge/fragment"
	"github.com/arloliu/dictmerge/internal/options"
	"github.com/arloliu/dictmerge/memory"
)

// Merger unifies and transposes dictionary-encoded columns.
//
// A Merger is safe for concurrent use; every merge builds its own Unifier.
type Merger struct {
	alloc   memory.Allocator
	logger  *slog.Logger
	workers int
}

// New creates a Merger.
//
// Parameters:
//   - opts: Optional configuration (WithAllocator, WithLogger, WithWorkers)
//
// Returns:
//   - *Merger: The merger
//   - error: errs.ErrInvalid for a nil logger or fewer than one worker
func New(opts ...Option) (*Merger, error) {
	m := &Merger{
		alloc:   memory.DefaultAllocator,
		logger:  slog.New(slog.DiscardHandler),
		workers: DefaultWorkers,
	}
	if err := options.Apply(m, opts...); err != nil {
		return nil, err
	}

	return m, nil
}

// MergeColumn merges the inputs of one column.
//
// All inputs must have dictionaries of the same value type; their index types may
// differ. Canonical codes are assigned in input order, so values of cols[0] keep
// their positions and an input whose codes need no change is reused without copying.
//
// Parameters:
//   - cols: Inputs of the column; they are not modified
//
// Returns:
//   - *Result: The merged column, owned by the caller
//   - error: errs.ErrNoColumns for no inputs, errs.ErrInvalid for a nil input, a
//     dictionary with nulls or a different value type, errs.ErrNotImplemented for value
//     types that cannot be unified, or an allocation error
func (m *Merger) MergeColumn(cols []*array.Dictionary) (*Result, error) {
	if len(cols) == 0 {
		return nil, errs.ErrNoColumns
	}
	for i, c := range cols {
		if c == nil {
			return nil, fmt.Errorf("%w: input %d is nil", errs.ErrInvalid, i)
		}
	}

	u, err := dictionary.NewUnifier(m.alloc, cols[0].DictType().ValueType)
	if err != nil {
		return nil, err
	}

	maps := make([]*memory.Buffer, 0, len(cols))
	defer func() {
		for _, b := range maps {
			b.Release()
		}
	}()

	for i, c := range cols {
		b, err := u.UnifyAndTranspose(c.Dictionary())
		if err != nil {
			return nil, fmt.Errorf("input %d: %w", i, err)
		}
		maps = append(maps, b)
	}

	typ, dict, err := u.GetResult()
	if err != nil {
		return nil, err
	}

	res := &Result{
		Type:       typ,
		Dictionary: dict,
		Columns:    make([]*array.Dictionary, 0, len(cols)),
	}
	for i, c := range cols {
		out, err := dictionary.Transpose(m.alloc, c, typ, dict, dictionary.TransposeMap(maps[i]))
		if err != nil {
			res.Release()
			return nil, fmt.Errorf("input %d: %w", i, err)
		}
		if sharesCodes(c, out) {
			res.FastPaths++
		}
		res.Columns = append(res.Columns, out)
	}

	m.logger.Debug("merged column",
		"inputs", len(cols),
		"value_type", typ.ValueType,
		"values", dict.Len(),
		"index_type", typ.IndexType,
		"fast_paths", res.FastPaths,
	)

	return res, nil
}

// MergeTable merges tables column by column.
//
// Every table must have the same number of columns; column j of the result merges
// column j of all tables. Columns are merged concurrently by up to the configured
// number of workers. The first failure cancels the columns not yet started.
//
// Parameters:
//   - ctx: Context for cancellation
//   - tables: Tables as column lists
//
// Returns:
//   - []*Result: One result per column, owned by the caller
//   - error: errs.ErrNoColumns for no tables, errs.ErrColumnCountMismatch if the tables
//     differ in width, the first column error, or ctx's error
func (m *Merger) MergeTable(ctx context.Context, tables [][]*array.Dictionary) ([]*Result, error) {
	if len(tables) == 0 {
		return nil, errs.ErrNoColumns
	}
	width := len(tables[0])
	for i, t := range tables {
		if len(t) != width {
			return nil, fmt.Errorf("%w: table %d has %d columns, table 0 has %d", errs.ErrColumnCountMismatch, i, len(t), width)
		}
	}

	results := make([]*Result, width)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(m.workers)

	for j := range width {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			cols := make([]*array.Dictionary, len(tables))
			for i, t := range tables {
				cols[i] = t[j]
			}

			res, err := m.MergeColumn(cols)
			if err != nil {
				m.logger.Warn("column merge failed", "column", j, "error", err)
				return fmt.Errorf("column %d: %w", j, err)
			}
			results[j] = res

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		for _, r := range results {
			r.Release()
		}

		return nil, err
	}

	return results, nil
}

// MergeFragments decodes encoded fragments of one column and merges them.
//
// Fragments are decoded concurrently by up to the configured number of workers.
//
// Parameters:
//   - ctx: Context for cancellation
//   - blobs: Encoded fragments
//
// Returns:
//   - *Result: The merged column, owned by the caller
//   - error: errs.ErrNoColumns for no fragments, fragment errors wrapped with the
//     fragment position, MergeColumn errors, or ctx's error
func (m *Merger) MergeFragments(ctx context.Context, blobs [][]byte) (*Result, error) {
	if len(blobs) == 0 {
		return nil, errs.ErrNoColumns
	}

	set, err := fragment.DecodeSet(blobs...)
	if err != nil {
		return nil, err
	}

	cols := make([]*array.Dictionary, set.Len())
	defer func() {
		for _, c := range cols {
			if c != nil {
				c.Release()
			}
		}
	}()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(m.workers)
	for i, f := range set.All() {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			col, err := f.Decode(m.alloc)
			if err != nil {
				m.logger.Warn("fragment decode failed", "fragment", i, "error", err)
				return fmt.Errorf("fragment %d: %w", i, err)
			}
			cols[i] = col

			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return m.MergeColumn(cols)
}

// sharesCodes reports whether out reuses the code buffer of in.
func sharesCodes(in, out *array.Dictionary) bool {
	inBufs, outBufs := in.Data().Buffers(), out.Data().Buffers()

	return len(inBufs) > 1 && len(outBufs) > 1 && inBufs[1] == outBufs[1]
}
