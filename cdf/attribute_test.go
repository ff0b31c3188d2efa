package cdf

import (
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSession(t *testing.T, p EntryProber) (*File, *logtest.Hook) {
	t.Helper()
	logger, hook := logtest.NewNullLogger()
	f, err := NewSession(p, WithLogger(logger))
	require.NoError(t, err)
	return f, hook
}

func sparseProber() *fakeProber {
	return newFakeProber().add("Sparse", &fakeAttr{
		entries: map[int]Value{
			0: Doubles(1.0),
			2: Doubles(2.0),
			5: Doubles(3.0),
		},
	})
}

func TestAggregateSparseGlobal(t *testing.T) {
	f, _ := newSession(t, sparseProber())
	a, err := f.GlobalAttr("Sparse")
	require.NoError(t, err)

	agg, err := a.Aggregate()
	require.NoError(t, err)

	assert.Equal(t, []bool{true, false, true, false, false, true}, agg.Mask.Flags())
	assert.Equal(t, "101001", agg.Mask.String())
	assert.Equal(t, 3, agg.Mask.Count())
	assert.Equal(t, []int{0, 2, 5}, agg.Entries)
	assert.Equal(t, []TypeTag{Double, Double, Double}, agg.Types)
	assert.Empty(t, agg.Diagnostics)

	require.Equal(t, HomogeneousArray, agg.Value.Kind())
	typ, ok := agg.Value.Type()
	require.True(t, ok)
	assert.Equal(t, Double, typ)
	vals, ok := agg.Value.Array()
	require.True(t, ok)
	require.Len(t, vals, 3)
	for i, want := range []float64{1.0, 2.0, 3.0} {
		assert.Equal(t, []float64{want}, vals[i].Floats())
	}
}

func TestAggregateMixedTypes(t *testing.T) {
	p := newFakeProber().add("Mixed", &fakeAttr{
		entries: map[int]Value{0: Text("abc"), 1: Doubles(4.5)},
	})
	f, _ := newSession(t, p)
	a, err := f.Attr("Mixed")
	require.NoError(t, err)

	agg, err := a.Aggregate()
	require.NoError(t, err)
	require.Equal(t, MixedCollection, agg.Value.Kind())
	_, ok := agg.Value.Type()
	assert.False(t, ok)

	items := agg.Value.Items()
	require.Len(t, items, 2)
	assert.Equal(t, Char, items[0].Type)
	text, ok := items[0].Value.Text()
	require.True(t, ok)
	assert.Equal(t, "abc", text)
	assert.Equal(t, Double, items[1].Type)
	assert.Equal(t, []float64{4.5}, items[1].Value.Floats())

	assert.Equal(t, []any{"abc", 4.5}, agg.Value.Interface())
}

func TestAggregateMixedNeverDropsValues(t *testing.T) {
	entries := map[int]Value{
		0: Doubles(1),
		1: mustInts(Int4, 2),
		3: Text("x\x00\x00"),
		4: mustInts(Int4, 5, 6),
		6: Doubles(7),
	}
	f, _ := newSession(t, newFakeProber().add("M", &fakeAttr{entries: entries}))
	a, err := f.Attr("M")
	require.NoError(t, err)

	agg, err := a.Aggregate()
	require.NoError(t, err)
	require.Equal(t, MixedCollection, agg.Value.Kind())
	assert.Equal(t, 5, agg.Value.Len())
	assert.Equal(t, []int{0, 1, 3, 4, 6}, agg.Entries)
	assert.Equal(t, []TypeTag{Double, Int4, Char, Int4, Double}, agg.Types)
	assert.Equal(t, []any{1.0, int64(2), "x", []int64{5, 6}, 7.0}, agg.Value.Interface())
}

func TestAggregateCharArrayDecodesEveryEntry(t *testing.T) {
	p := newFakeProber().add("Lines", &fakeAttr{
		entries: map[int]Value{0: Text("first\x00"), 1: Text("second")},
	})
	f, _ := newSession(t, p)
	a, _ := f.Attr("Lines")

	agg, err := a.Aggregate()
	require.NoError(t, err)
	require.Equal(t, HomogeneousArray, agg.Value.Kind())
	vals, _ := agg.Value.Array()
	for i, want := range []string{"first", "second"} {
		text, ok := vals[i].Text()
		require.True(t, ok)
		assert.Equal(t, want, text)
	}
}

func TestAggregateZeroEntries(t *testing.T) {
	p := newFakeProber().add("Empty", &fakeAttr{entries: map[int]Value{}})
	f, _ := newSession(t, p)
	a, err := f.Attr("Empty")
	require.NoError(t, err)

	agg, err := a.Aggregate()
	require.NoError(t, err)
	assert.Equal(t, Absent, agg.Value.Kind())
	assert.Nil(t, agg.Value.Interface())
	assert.Equal(t, 0, agg.Mask.Len())

	diags, err := a.ParseGlobal()
	require.NoError(t, err)
	assert.Empty(t, diags)
	assert.Equal(t, Resolved, a.State())
	_, ok := a.Value()
	assert.False(t, ok)
	_, ok = a.DataType()
	assert.False(t, ok)
}

func TestAggregateScalar(t *testing.T) {
	p := newFakeProber().add("One", &fakeAttr{entries: map[int]Value{3: mustInts(Int2, 42)}})
	f, _ := newSession(t, p)
	a, _ := f.Attr("One")

	agg, err := a.Aggregate()
	require.NoError(t, err)
	require.Equal(t, Scalar, agg.Value.Kind())
	v, ok := agg.Value.Scalar()
	require.True(t, ok)
	assert.Equal(t, []int64{42}, v.Ints())
	assert.Equal(t, "0001", agg.Mask.String())
}

func TestAggregateFewerThanReported(t *testing.T) {
	p := newFakeProber().add("Partial", &fakeAttr{
		entries:    map[int]Value{1: Doubles(1), 4: Doubles(2)},
		numEntries: intp(5),
	})
	f, hook := newSession(t, p)
	a, _ := f.Attr("Partial")

	agg, err := a.Aggregate()
	require.NoError(t, err)
	require.Equal(t, HomogeneousArray, agg.Value.Kind())
	assert.Equal(t, 2, agg.Value.Len())
	assert.Equal(t, []int{1, 4}, agg.Entries)
	assert.Len(t, agg.Types, 2)
	assert.Equal(t, 2, agg.Mask.Count())
	assert.Equal(t, 5, agg.Mask.Reported())

	require.Len(t, agg.Diagnostics, 1)
	d := agg.Diagnostics[0]
	assert.Equal(t, Diagnostic{Kind: PartialEntries, Attr: "Partial", Reported: 5, Observed: 2}, d)

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.WarnLevel, entry.Level)
	assert.Equal(t, "Partial", entry.Data["attribute"])
	assert.Equal(t, 5, entry.Data["reported"])
	assert.Equal(t, 2, entry.Data["observed"])
}

func TestAggregateStopsAtReportedCount(t *testing.T) {
	p := newFakeProber().add("Over", &fakeAttr{
		entries:    map[int]Value{0: Doubles(1), 1: Doubles(2), 2: Doubles(3)},
		numEntries: intp(2),
	})
	f, _ := newSession(t, p)
	a, _ := f.Attr("Over")

	agg, err := a.Aggregate()
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1}, agg.Entries)
	assert.Equal(t, 2, agg.Mask.Count())
	assert.Equal(t, agg.Mask.Count(), countTrue(agg.Mask.Flags()))
	assert.Empty(t, agg.Diagnostics)
	assert.Equal(t, 2, p.existsCalls)
}

func countTrue(flags []bool) int {
	n := 0
	for _, f := range flags {
		if f {
			n++
		}
	}
	return n
}

func TestAggregateExplicitEntries(t *testing.T) {
	f, _ := newSession(t, sparseProber())
	a, _ := f.Attr("Sparse")

	agg, err := a.Aggregate(5, 0, 5)
	require.NoError(t, err)
	assert.Equal(t, []int{5, 0, 5}, agg.Entries)
	assert.Equal(t, "100001", agg.Mask.String())
	assert.Equal(t, 2, agg.Mask.Count())
	assert.True(t, agg.Mask.Consistent())

	vals, ok := agg.Value.Array()
	require.True(t, ok)
	require.Len(t, vals, 3)
	assert.Equal(t, []float64{3}, vals[0].Floats())
	assert.Equal(t, []float64{1}, vals[1].Floats())
	assert.Equal(t, []float64{3}, vals[2].Floats())
}

func TestAggregateExplicitSingleEntry(t *testing.T) {
	f, _ := newSession(t, sparseProber())
	a, _ := f.Attr("Sparse")

	agg, err := a.Aggregate(2)
	require.NoError(t, err)
	require.Equal(t, Scalar, agg.Value.Kind())
	assert.Equal(t, "001", agg.Mask.String())
}

func TestAggregateExplicitMissingEntry(t *testing.T) {
	f, _ := newSession(t, sparseProber())
	a, _ := f.Attr("Sparse")

	_, err := a.Aggregate(3)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEntryNotFound)

	var entryErr *EntryError
	require.True(t, errors.As(err, &entryErr))
	assert.Equal(t, 3, entryErr.Entry)
	assert.Equal(t, 0, entryErr.Position)
	assert.Equal(t, "Sparse", entryErr.Attr)
	assert.Contains(t, err.Error(), "entry 3")
	assert.Contains(t, err.Error(), `"Sparse"`)

	_, err = a.Aggregate(0, 2, 4)
	require.True(t, errors.As(err, &entryErr))
	assert.Equal(t, 4, entryErr.Entry)
	assert.Equal(t, 2, entryErr.Position)
}

func TestAggregateExplicitEntryFarBeyondMax(t *testing.T) {
	f, _ := newSession(t, sparseProber())
	a, _ := f.Attr("Sparse")

	_, err := a.Aggregate(0, 1<<50)
	require.ErrorIs(t, err, ErrEntryNotFound)
	var entryErr *EntryError
	require.True(t, errors.As(err, &entryErr))
	assert.Equal(t, 1<<50, entryErr.Entry)
	assert.Equal(t, 1, entryErr.Position)
}

func TestAggregateNegativeEntry(t *testing.T) {
	p := sparseProber()
	f, _ := newSession(t, p)
	a, _ := f.Attr("Sparse")

	_, err := a.Aggregate(0, -1)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.Zero(t, p.existsCalls)
}

func TestAggregateVariableScope(t *testing.T) {
	p := newFakeProber().add("UNITS", &fakeAttr{scope: VariableScope})
	f, _ := newSession(t, p)
	a, err := f.VariableAttr("UNITS")
	require.NoError(t, err)

	_, err = a.Aggregate()
	assert.ErrorIs(t, err, ErrUnsupportedScope)
	_, err = a.BuildMask(false)
	assert.ErrorIs(t, err, ErrUnsupportedScope)
}

func TestAggregatePropagatesReadErrors(t *testing.T) {
	p := sparseProber()
	p.failEntry = intp(2)
	f, _ := newSession(t, p)
	a, _ := f.Attr("Sparse")

	_, err := a.Aggregate()
	require.Error(t, err)
	var attrErr *AttrError
	require.True(t, errors.As(err, &attrErr))
	assert.Equal(t, "Sparse", attrErr.Attr)
}

func TestParseGlobal(t *testing.T) {
	f, _ := newSession(t, sparseProber())
	a, _ := f.GlobalAttr("Sparse")
	assert.Equal(t, Constructed, a.State())
	_, ok := a.Value()
	assert.False(t, ok)

	diags, err := a.ParseGlobal()
	require.NoError(t, err)
	assert.Empty(t, diags)
	assert.Equal(t, Resolved, a.State())

	v, ok := a.Value()
	require.True(t, ok)
	assert.Equal(t, HomogeneousArray, v.Kind())
	typ, ok := a.DataType()
	require.True(t, ok)
	assert.Equal(t, Double, typ)
}

func TestParseGlobalIdempotent(t *testing.T) {
	p := newFakeProber().add("Mixed", &fakeAttr{
		entries: map[int]Value{0: Text("abc"), 2: Doubles(4.5)},
	})
	f, _ := newSession(t, p)
	a, _ := f.Attr("Mixed")

	_, err := a.ParseGlobal()
	require.NoError(t, err)
	first, ok := a.Value()
	require.True(t, ok)
	calls := p.existsCalls

	_, err = a.ParseGlobal()
	require.NoError(t, err)
	second, ok := a.Value()
	require.True(t, ok)

	assert.Equal(t, first, second)
	assert.Equal(t, 2*calls, p.existsCalls, "second parse rescans")
	_, ok = a.DataType()
	assert.False(t, ok, "mixed attributes cache no type")
}

func TestParseGlobalFailureLeavesDescriptor(t *testing.T) {
	p := sparseProber()
	f, _ := newSession(t, p)
	a, _ := f.Attr("Sparse")

	_, err := a.ParseGlobal()
	require.NoError(t, err)
	before, _ := a.Value()

	p.failEntry = intp(5)
	_, err = a.ParseGlobal()
	require.Error(t, err)

	after, ok := a.Value()
	require.True(t, ok)
	assert.Equal(t, before, after)
	assert.Equal(t, Resolved, a.State())

	f2, _ := newSession(t, p)
	b, _ := f2.Attr("Sparse")
	_, err = b.ParseGlobal()
	require.Error(t, err)
	assert.Equal(t, Constructed, b.State())
}

func TestParseGlobalScopeMismatch(t *testing.T) {
	p := newFakeProber().add("Drifted", &fakeAttr{
		entries: map[int]Value{0: Doubles(1)},
	})
	f, hook := newSession(t, p)
	a, err := f.GlobalAttr("Drifted")
	require.NoError(t, err)

	p.attrs["Drifted"].scope = VariableScope
	diags, err := a.ParseGlobal()
	require.NoError(t, err)
	require.Len(t, diags, 1)
	assert.Equal(t, ScopeMismatch, diags[0].Kind)
	assert.Equal(t, int(GlobalScope), diags[0].Reported)
	assert.Equal(t, int(VariableScope), diags[0].Observed)
	assert.Contains(t, diags[0].String(), "VARIABLE_SCOPE")

	assert.Equal(t, VariableScope, a.Scope())
	assert.True(t, a.IsGlobal())
	v, ok := a.Value()
	require.True(t, ok)
	assert.Equal(t, Scalar, v.Kind())
	assert.NotEmpty(t, hook.AllEntries())
}

func TestParseVariable(t *testing.T) {
	p := newFakeProber().add("FIELDNAM", &fakeAttr{
		scope: VariableScope,
		variables: map[string]Value{
			"Density": Text("Proton density\x00\x00"),
		},
	})
	f, _ := newSession(t, p)
	a, err := f.VariableAttr("FIELDNAM")
	require.NoError(t, err)

	v, err := a.ParseVariable("Density")
	require.NoError(t, err)
	text, ok := v.Text()
	require.True(t, ok)
	assert.Equal(t, "Proton density", text)
	assert.Equal(t, Resolved, a.State())

	_, ok = a.Value()
	assert.False(t, ok, "variable values are not cached")
}

func TestParseVariableNotOnVariable(t *testing.T) {
	p := newFakeProber().
		add("FIELDNAM", &fakeAttr{scope: VariableScope, variables: map[string]Value{}}).
		add("TITLE", &fakeAttr{entries: map[int]Value{0: Text("t")}})
	f, _ := newSession(t, p)

	a, _ := f.Attr("FIELDNAM")
	_, err := a.ParseVariable("Epoch")
	require.ErrorIs(t, err, ErrAttributeNotOnVariable)
	var varErr *VariableAttrError
	require.True(t, errors.As(err, &varErr))
	assert.Equal(t, "FIELDNAM", varErr.Attr)
	assert.Equal(t, "Epoch", varErr.Variable)
	assert.Contains(t, err.Error(), `"Epoch"`)
	assert.Contains(t, err.Error(), `"FIELDNAM"`)
	assert.Equal(t, Constructed, a.State())

	g, _ := f.Attr("TITLE")
	_, err = g.ParseVariable("Epoch")
	assert.ErrorIs(t, err, ErrAttributeNotOnVariable)

	_, err = a.ParseVariable("")
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestAttrLookup(t *testing.T) {
	p := newFakeProber().
		add("TITLE", &fakeAttr{entries: map[int]Value{0: Text("t")}}).
		add("UNITS", &fakeAttr{scope: VariableScopeAssumed})
	f, _ := newSession(t, p)

	a, err := f.Attr("TITLE")
	require.NoError(t, err)
	again, err := f.Attr("TITLE")
	require.NoError(t, err)
	assert.Same(t, a, again)
	assert.Equal(t, "TITLE", a.Name())
	assert.Equal(t, 0, a.Number())
	assert.True(t, a.IsGlobal())

	_, err = f.Attr("missing")
	assert.ErrorIs(t, err, ErrAttributeNotFound)
	_, err = f.Attr("")
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = f.GlobalAttr("UNITS")
	assert.ErrorIs(t, err, ErrUnsupportedScope)
	_, err = f.VariableAttr("TITLE")
	assert.ErrorIs(t, err, ErrUnsupportedScope)
	u, err := f.VariableAttr("UNITS")
	require.NoError(t, err)
	assert.False(t, u.IsGlobal())

	names, err := f.Attributes()
	require.NoError(t, err)
	assert.Equal(t, []string{"TITLE", "UNITS"}, names)
}

func TestClosedSession(t *testing.T) {
	f, _ := newSession(t, sparseProber())
	a, err := f.Attr("Sparse")
	require.NoError(t, err)
	require.NoError(t, f.Close())
	require.NoError(t, f.Close())

	_, err = a.Aggregate()
	assert.ErrorIs(t, err, ErrClosed)
	_, err = a.BuildMask(true)
	assert.ErrorIs(t, err, ErrClosed)
	_, err = a.ParseGlobal()
	assert.ErrorIs(t, err, ErrClosed)
	_, err = a.ParseVariable("x")
	assert.ErrorIs(t, err, ErrClosed)
	_, err = f.Attr("Sparse")
	assert.ErrorIs(t, err, ErrClosed)
	_, err = f.Attributes()
	assert.ErrorIs(t, err, ErrClosed)
}

func TestNewSessionNilProber(t *testing.T) {
	_, err := NewSession(nil)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}
