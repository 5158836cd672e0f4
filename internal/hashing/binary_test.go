package hashing

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBinaryMemoTable_GetOrInsert(t *testing.T) {
	m := NewBinaryMemoTable(0, 0)

	for i, v := range []string{"foo", "bar", "", "baz"} {
		idx, found, err := m.GetOrInsertString(v)
		require.NoError(t, err)
		require.False(t, found, "value %q", v)
		require.Equal(t, int32(i), idx)
	}

	idx, found, err := m.GetOrInsert([]byte("bar"))
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, int32(1), idx)

	idx, found, err = m.GetOrInsertString("")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, int32(2), idx)

	require.Equal(t, 4, m.Size())
	require.Equal(t, 9, m.ValuesSize())
	require.Equal(t, []byte("baz"), m.Value(3))
	require.Empty(t, m.Value(2))
}

func TestBinaryMemoTable_Get(t *testing.T) {
	m := NewBinaryMemoTable(2, 16)
	_, _, err := m.GetOrInsertString("alpha")
	require.NoError(t, err)

	idx, ok := m.Get([]byte("alpha"))
	require.True(t, ok)
	require.Equal(t, int32(0), idx)

	_, ok = m.Get([]byte("alph"))
	require.False(t, ok)
}

func TestBinaryMemoTable_HashCollision(t *testing.T) {
	m := NewBinaryMemoTable(0, 0)
	_, _, err := m.GetOrInsertString("a")
	require.NoError(t, err)

	// Force a second value into the same bucket to exercise the equality check.
	h := uint64(0)
	for k := range m.buckets {
		h = k
	}
	m.data = append(m.data, 'b')
	m.offsets = append(m.offsets, int32(len(m.data)))
	m.buckets[h] = append(m.buckets[h], 1)

	idx, ok := m.lookup(h, []byte("b"))
	require.True(t, ok)
	require.Equal(t, int32(1), idx)

	idx, ok = m.lookup(h, []byte("a"))
	require.True(t, ok)
	require.Equal(t, int32(0), idx)

	_, ok = m.lookup(h, []byte("c"))
	require.False(t, ok)
}

func TestBinaryMemoTable_CopyFromOffset(t *testing.T) {
	m := NewBinaryMemoTable(0, 0)
	for _, v := range []string{"ab", "cde", "f", "ghij"} {
		_, _, err := m.GetOrInsertString(v)
		require.NoError(t, err)
	}

	offsets := make([]int32, m.Size()-1+1)
	m.CopyOffsets(1, offsets)
	require.Equal(t, []int32{0, 3, 4, 8}, offsets)

	require.Equal(t, 8, m.ValuesSizeFrom(1))
	data := make([]byte, m.ValuesSizeFrom(1))
	m.CopyValues(1, data)
	require.Equal(t, []byte("cdefghij"), data)

	all := make([]int32, m.Size()+1)
	m.CopyOffsets(0, all)
	require.Equal(t, []int32{0, 2, 5, 6, 10}, all)
}
