package dataset

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClassLabelIndex(t *testing.T) {
	idx, err := NewClassLabelIndex("Slytherin", "Ravenclaw", "Gryffindor", "Hufflepuff")
	require.NoError(t, err)

	assert.Equal(t, 4, idx.Len())
	assert.Equal(t, "Gryffindor", idx.Name(2))
	k, ok := idx.Index("Hufflepuff")
	assert.True(t, ok)
	assert.Equal(t, 3, k)
	_, ok = idx.Index("Durmstrang")
	assert.False(t, ok)

	names := idx.Names()
	names[0] = "changed"
	assert.Equal(t, "Slytherin", idx.Name(0))
}

func TestNewClassLabelIndexValidation(t *testing.T) {
	_, err := NewClassLabelIndex()
	assert.Error(t, err)
	_, err = NewClassLabelIndex("A", "")
	assert.Error(t, err)
	_, err = NewClassLabelIndex("A", "B", "A")
	assert.Error(t, err)
}

func TestOneHot(t *testing.T) {
	ds, err := LoadReader(strings.NewReader("Index,House,A\n0,B,1\n1,A,2\n2,C,3\n3,B,4\n"), "t.csv", LoadOptions{})
	require.NoError(t, err)
	idx, err := NewClassLabelIndex("A", "B")
	require.NoError(t, err)

	T, unknown, err := idx.OneHot(ds, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, unknown)

	want := [][]float64{{0, 1}, {1, 0}, {0, 0}, {0, 1}}
	for i, row := range want {
		assert.Equal(t, row, T.RawRowView(i))
	}

	_, _, err = idx.OneHot(ds, 3)
	assert.Error(t, err)
}
