package glwindow

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSignalSetAndValue(t *testing.T) {
	s := NewSignal(1)
	assert.Equal(t, 1, s.Value())
	s.Set(2)
	assert.Equal(t, 2, s.Value())
}

func TestSignalListenerOrder(t *testing.T) {
	s := NewSignal(0)
	var order []int
	s.Subscribe(func(int) { order = append(order, 1) })
	s.Subscribe(func(int) { order = append(order, 2) })
	s.Subscribe(func(int) { order = append(order, 3) })
	s.Set(42)
	assert.Equal(t, []int{1, 2, 3}, order)
}

func TestSignalPropagationIsSynchronous(t *testing.T) {
	s := NewSignal(0)
	seen := -1
	s.Subscribe(func(v int) { seen = v })
	s.Set(7)
	// Set must not return before all listeners ran.
	assert.Equal(t, 7, seen)
}

func TestSignalUnsubscribe(t *testing.T) {
	s := NewSignal(0)
	count := 0
	unsubscribe := s.Subscribe(func(int) { count++ })
	s.Set(1)
	unsubscribe()
	s.Set(2)
	assert.Equal(t, 1, count)
}

func TestDistinctSignalDropsRepeats(t *testing.T) {
	s := NewDistinct(false)
	count := 0
	s.Subscribe(func(bool) { count++ })
	s.Set(true)
	s.Set(true)
	s.Set(true)
	assert.Equal(t, 1, count)
	s.Set(false)
	assert.Equal(t, 2, count)
}

func TestMapRecomputesEagerly(t *testing.T) {
	src := NewSignal(2)
	doubled := Map(src, func(v int) int { return v * 2 })
	assert.Equal(t, 4, doubled.Value())
	src.Set(5)
	assert.Equal(t, 10, doubled.Value())
}

func TestMap2TracksBothDependencies(t *testing.T) {
	a := NewSignal(1)
	b := NewSignal(10)
	sum := Map2(a, b, func(x, y int) int { return x + y })
	assert.Equal(t, 11, sum.Value())
	a.Set(2)
	assert.Equal(t, 12, sum.Value())
	b.Set(20)
	assert.Equal(t, 22, sum.Value())
}

func TestDropRepeats(t *testing.T) {
	src := NewSignal(1)
	out := DropRepeats(src)
	count := 0
	out.Subscribe(func(int) { count++ })
	src.Set(1)
	src.Set(1)
	assert.Equal(t, 0, count)
	src.Set(2)
	src.Set(2)
	assert.Equal(t, 1, count)
}
