// Package fragment serializes dictionary-encoded columns into self-describing byte
// fragments and reads them back.
//
// A fragment is what a single data source contributes to a column: its dictionary,
// its codes and, when it has nulls, its validity bitmap. Fragments produced by
// different sources usually carry different dictionaries for the same value type,
// which is why they are unified (see package merge) before being combined.
//
// # Layout
//
//	+----------------------+  offset 0
//	| header (32 bytes)    |  section.FragmentHeader
//	+----------------------+  offset 32
//	| dictionary payload   |  values, compressed
//	+----------------------+  CodesOffset
//	| codes payload        |  one code per row at the index width, compressed
//	+----------------------+  ValidityOffset
//	| validity payload     |  only when the column has nulls, compressed
//	+----------------------+  end
//
// The header checksum covers every byte after the header.
//
// # Encoding
//
//	enc, err := fragment.NewEncoder(fragment.WithCompression(format.CompressionZstd))
//	frag, err := enc.Encode(column)
//	data := frag.Bytes()
//
// # Decoding
//
//	column, err := fragment.Decode(memory.DefaultAllocator, data)
//	defer column.Release()
//
// A Set groups the fragments of one column and decodes them together:
//
//	set, err := fragment.DecodeSet(data1, data2, data3)
//	columns, err := set.Columns(alloc)
//
// Encoders and decoders are safe for concurrent use; an Encoder's configuration
// is read-only after NewEncoder returns.
package fragment
