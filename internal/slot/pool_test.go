package slot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fill(t *testing.T, p *Pool[string], values ...string) {
	t.Helper()
	for _, v := range values {
		i, ok := p.Allocate()
		require.True(t, ok, "pool full while filling %q", v)
		p.Occupy(i, v)
	}
}

func TestNewPoolIsEmpty(t *testing.T) {
	p := New[string](3)

	assert.Equal(t, 3, p.Cap())
	assert.Equal(t, 0, p.Len())
	assert.False(t, p.AnyActive())
	assert.Empty(t, p.ActiveSlots())
}

func TestAllocateReturnsLowestInactive(t *testing.T) {
	p := New[string](4)
	p.Occupy(0, "a")
	p.Occupy(2, "c")

	i, ok := p.Allocate()
	require.True(t, ok)
	assert.Equal(t, 1, i)

	p.Occupy(1, "b")
	i, ok = p.Allocate()
	require.True(t, ok)
	assert.Equal(t, 3, i)
}

func TestAllocateDoesNotOccupy(t *testing.T) {
	p := New[string](2)

	first, _ := p.Allocate()
	second, _ := p.Allocate()
	assert.Equal(t, first, second)
	assert.False(t, p.AnyActive())
}

func TestAllocateReportsFull(t *testing.T) {
	p := New[string](3)
	fill(t, p, "a", "b", "c")

	i, ok := p.Allocate()
	assert.False(t, ok)
	assert.Equal(t, -1, i)
	assert.Equal(t, 3, p.Len())
}

func TestReleaseThenAllocateReusesIndex(t *testing.T) {
	p := New[string](3)
	fill(t, p, "a", "b", "c")

	p.Release(1)
	i, ok := p.Allocate()
	require.True(t, ok)
	assert.Equal(t, 1, i)
}

func TestReleaseIsIdempotent(t *testing.T) {
	p := New[string](2)
	fill(t, p, "a")

	p.Release(0)
	p.Release(0)
	p.Release(1)

	assert.Equal(t, 0, p.Len())
	v, active := p.Get(0)
	assert.False(t, active)
	assert.Empty(t, v)
}

func TestOccupyOverwriteKeepsIndex(t *testing.T) {
	p := New[string](3)
	fill(t, p, "a", "b")

	p.Occupy(0, "a2")

	assert.Equal(t, 2, p.Len())
	assert.Equal(t, []Slot[string]{
		{Index: 0, Active: true, Data: "a2"},
		{Index: 1, Active: true, Data: "b"},
	}, p.ActiveSlots())
}

func TestIterationFollowsIndexNotInsertion(t *testing.T) {
	p := New[string](3)
	p.Occupy(2, "first")
	p.Occupy(0, "second")
	p.Occupy(1, "third")

	var order []int
	for i := range p.Active() {
		order = append(order, i)
	}
	assert.Equal(t, []int{0, 1, 2}, order)
	assert.Equal(t, []string{"second", "third", "first"}, p.Values())
}

func TestActiveStopsWhenYieldReturnsFalse(t *testing.T) {
	p := New[string](3)
	fill(t, p, "a", "b", "c")

	var seen []string
	for _, v := range p.Active() {
		seen = append(seen, v)
		if v == "b" {
			break
		}
	}
	assert.Equal(t, []string{"a", "b"}, seen)
}

func TestClear(t *testing.T) {
	p := New[string](2)
	fill(t, p, "a", "b")

	p.Clear()

	assert.False(t, p.AnyActive())
	i, ok := p.Allocate()
	require.True(t, ok)
	assert.Equal(t, 0, i)
}

func TestOutOfRangePanics(t *testing.T) {
	p := New[string](2)

	for _, idx := range []int{-1, 2, 99} {
		assert.PanicsWithError(t,
			(&PreconditionError{Op: "occupy", Index: idx, Cap: 2}).Error(),
			func() { p.Occupy(idx, "x") },
		)
		assert.Panics(t, func() { p.Release(idx) })
		assert.Panics(t, func() { p.Get(idx) })
	}
}

func TestNewRejectsNonPositiveCapacity(t *testing.T) {
	assert.Panics(t, func() { New[int](0) })
	assert.Panics(t, func() { New[int](-3) })
}
