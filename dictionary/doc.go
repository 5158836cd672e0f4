// Package dictionary unifies independently encoded dictionaries and transposes
// dictionary codes between code spaces.
//
// # Unification
//
// A Unifier merges the dictionaries of several dictionary-encoded columns of one value
// type into a single canonical dictionary. Each call to UnifyAndTranspose returns a
// transpose map for one input dictionary: map[oldCode] == canonicalCode. After every
// input has been fed, GetResult returns the canonical dictionary type (with the
// narrowest signed index type able to address it) and the canonical dictionary.
//
//	u, err := dictionary.NewUnifier(alloc, format.String)
//	mapA, err := u.UnifyAndTranspose(colA.Dictionary())
//	mapB, err := u.UnifyAndTranspose(colB.Dictionary())
//	dt, dict, err := u.GetResult()
//
// # Transposition
//
// Transpose rewrites a dictionary array's codes through a transpose map into the code
// space (and index width) of a new dictionary:
//
//	outA, err := dictionary.Transpose(alloc, colA, dt, dict, dictionary.TransposeMap(mapA))
//
// When the index width is unchanged and the map is the identity, the result shares the
// input's code and validity buffers and only the dictionary is swapped.
//
// # Thread Safety
//
// A Unifier is a single-owner accumulator and is not safe for concurrent use.
// Transpose is a pure function and may be called concurrently.
package dictionary
