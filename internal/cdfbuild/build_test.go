package cdfbuild

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robert-malhotra/go-cdf/internal/dtype"
	"github.com/robert-malhotra/go-cdf/internal/record"
)

func TestBytesRoundTrip(t *testing.T) {
	b := &File{
		Attributes: []Attribute{{
			Name:      "TITLE",
			GrEntries: []Entry{Text(0, "hello"), Int4s(3, 7, 8)},
		}},
	}
	raw, err := b.Bytes()
	require.NoError(t, err)

	f, err := record.Open(bytes.NewReader(raw))
	require.NoError(t, err)
	a, ok := f.Attribute("TITLE")
	require.True(t, ok)
	assert.Equal(t, record.ScopeGlobal, a.Scope)
	assert.Equal(t, int32(2), a.NgrEntries)
	assert.Equal(t, int32(3), a.MaxGrEntry)
	assert.Equal(t, int32(-1), a.MaxZEntry)

	e, ok, err := f.Entry(a, record.GrEntries, 3)
	require.NoError(t, err)
	require.True(t, ok)
	elems, err := f.Decode(e)
	require.NoError(t, err)
	assert.Equal(t, []int64{7, 8}, elems.Ints)
	assert.Equal(t, f.GDR.EOF, int64(len(raw)))
}

func TestCountOverride(t *testing.T) {
	b := &File{
		Attributes: []Attribute{{
			Name:         "Sparse",
			GrEntries:    []Entry{Doubles(0, 1)},
			NumGrEntries: Count(4),
			MaxGrEntry:   Count(6),
		}},
	}
	raw, err := b.Bytes()
	require.NoError(t, err)
	f, err := record.Open(bytes.NewReader(raw))
	require.NoError(t, err)
	a, _ := f.Attribute("Sparse")
	assert.Equal(t, int32(4), a.NgrEntries)
	assert.Equal(t, int32(6), a.MaxGrEntry)
}

func TestBytesErrors(t *testing.T) {
	_, err := (&File{Major: 4}).Bytes()
	assert.Error(t, err)

	bad := &File{Attributes: []Attribute{{
		Name:      "x",
		GrEntries: []Entry{{Num: 0, Type: dtype.Double, Elems: dtype.Elements{Ints: []int64{1}}}},
	}}}
	_, err = bad.Bytes()
	assert.Error(t, err)
}
