package cdf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// mockProber is an EntryProber driven by testify expectations.
type mockProber struct {
	mock.Mock
}

func (m *mockProber) Attributes() ([]string, error) {
	args := m.Called()
	return args.Get(0).([]string), args.Error(1)
}

func (m *mockProber) Inquire(name string) (Inquiry, error) {
	args := m.Called(name)
	return args.Get(0).(Inquiry), args.Error(1)
}

func (m *mockProber) AttrInfo(number int, kind EntryKind) (EntryInfo, error) {
	args := m.Called(number, kind)
	return args.Get(0).(EntryInfo), args.Error(1)
}

func (m *mockProber) EntryExists(name string, entry int) (bool, error) {
	args := m.Called(name, entry)
	return args.Bool(0), args.Error(1)
}

func (m *mockProber) Entry(name string, entry int) (Value, error) {
	args := m.Called(name, entry)
	return args.Get(0).(Value), args.Error(1)
}

func (m *mockProber) VariableEntry(attr, variable string) (VariableEntry, bool, error) {
	args := m.Called(attr, variable)
	return args.Get(0).(VariableEntry), args.Bool(1), args.Error(2)
}

func sparseMock() *mockProber {
	m := &mockProber{}
	m.On("Inquire", "Sparse").Return(Inquiry{Name: "Sparse", Number: 0, Scope: GlobalScope, MaxREntry: 5, MaxZEntry: -1}, nil)
	m.On("AttrInfo", 0, GEntry).Return(EntryInfo{NumEntries: 3, MaxEntry: 5}, nil)
	for i := 0; i <= 5; i++ {
		m.On("EntryExists", "Sparse", i).Return(i == 0 || i == 2 || i == 5, nil)
	}
	return m
}

func TestBuildMaskWithoutTypesReadsNoValues(t *testing.T) {
	m := sparseMock()
	f, _ := newSession(t, m)
	a, err := f.GlobalAttr("Sparse")
	require.NoError(t, err)

	scan, err := a.BuildMask(false)
	require.NoError(t, err)
	assert.Equal(t, "101001", scan.Mask.String())
	assert.Equal(t, 3, scan.Mask.Count())
	assert.Nil(t, scan.Types)
	assert.Empty(t, scan.Diagnostics)

	m.AssertNotCalled(t, "Entry", mock.Anything, mock.Anything)
	m.AssertNumberOfCalls(t, "EntryExists", 6)
}

func TestBuildMaskWithTypes(t *testing.T) {
	m := sparseMock()
	m.On("Entry", "Sparse", 0).Return(Text("a"), nil)
	m.On("Entry", "Sparse", 2).Return(Doubles(2), nil)
	m.On("Entry", "Sparse", 5).Return(mustInts(Int8, 5), nil)
	f, _ := newSession(t, m)
	a, _ := f.GlobalAttr("Sparse")

	scan, err := a.BuildMask(true)
	require.NoError(t, err)
	assert.Equal(t, []TypeTag{Char, Double, Int8}, scan.Types)
	m.AssertExpectations(t)
}

func TestBuildMaskCountMismatch(t *testing.T) {
	for _, reported := range []int{1, 7} {
		m := &mockProber{}
		m.On("Inquire", "Odd").Return(Inquiry{Name: "Odd", Number: 2, Scope: GlobalScopeAssumed, MaxREntry: 2, MaxZEntry: -1}, nil)
		m.On("AttrInfo", 2, GEntry).Return(EntryInfo{NumEntries: reported, MaxEntry: 2}, nil)
		m.On("EntryExists", "Odd", mock.AnythingOfType("int")).Return(true, nil)

		f, hook := newSession(t, m)
		a, err := f.GlobalAttr("Odd")
		require.NoError(t, err)

		scan, err := a.BuildMask(false)
		require.NoError(t, err)
		assert.Equal(t, "111", scan.Mask.String())
		assert.Equal(t, 3, scan.Mask.Count(), "observed count wins")
		assert.Equal(t, reported, scan.Mask.Reported())
		assert.False(t, scan.Mask.Consistent())
		require.Len(t, scan.Diagnostics, 1)
		assert.Equal(t, Diagnostic{Kind: PartialEntries, Attr: "Odd", Reported: reported, Observed: 3}, scan.Diagnostics[0])
		assert.Len(t, hook.AllEntries(), 1)
	}
}

func TestBuildMaskEmpty(t *testing.T) {
	m := &mockProber{}
	m.On("Inquire", "None").Return(Inquiry{Name: "None", Scope: GlobalScope, MaxREntry: -1, MaxZEntry: -1}, nil)
	m.On("AttrInfo", 0, GEntry).Return(EntryInfo{NumEntries: 0, MaxEntry: -1}, nil)
	f, _ := newSession(t, m)
	a, _ := f.Attr("None")

	scan, err := a.BuildMask(true)
	require.NoError(t, err)
	assert.Equal(t, 0, scan.Mask.Len())
	assert.Equal(t, 0, scan.Mask.Count())
	assert.Empty(t, scan.Diagnostics)
	m.AssertNotCalled(t, "EntryExists", mock.Anything, mock.Anything)
}

func TestEntryMaskAccessors(t *testing.T) {
	m := newMask(4, 2)
	m.set(1)
	m.set(1)
	m.set(3)
	assert.Equal(t, 2, m.Count())
	assert.True(t, m.Has(3))
	assert.False(t, m.Has(0))
	assert.False(t, m.Has(-1))
	assert.False(t, m.Has(4))

	flags := m.Flags()
	flags[0] = true
	assert.False(t, m.Has(0), "Flags returns a copy")

	assert.Equal(t, 0, newMask(-3, 0).Len())
}
