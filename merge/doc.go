// Package merge combines dictionary-encoded columns whose dictionaries were built
// independently.
//
// For each column, a Merger unifies the dictionaries of all inputs into one
// canonical dictionary and transposes every input's codes into it. Afterwards all
// inputs of the column share one dictionary type and one dictionary, so their codes
// can be compared or concatenated directly.
//
//	m, err := merge.New(merge.WithLogger(logger))
//	res, err := m.MergeColumn([]*array.Dictionary{a, b, c})
//	defer res.Release()
//
// MergeTable merges the columns of several tables concurrently, one column per
// worker, and MergeFragments merges encoded fragments of one column (see package
// fragment).
package merge
