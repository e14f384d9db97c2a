package glwindow

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPostAndDrainPreservesOrder(t *testing.T) {
	root := testRoot(t, Size{X: 800, Y: 600}, Size{X: 800, Y: 600})
	var order []int
	root.Post(func() { order = append(order, 1) }, false)
	root.Post(func() { order = append(order, 2) }, false)
	root.Post(func() { order = append(order, 3) }, false)
	root.drainEvents()
	assert.Equal(t, []int{1, 2, 3}, order)
	// Queue is empty now; a second drain is a no-op.
	root.drainEvents()
	assert.Equal(t, []int{1, 2, 3}, order)
}

func TestPostOnChildPanics(t *testing.T) {
	root := testRoot(t, Size{X: 800, Y: 600}, Size{X: 800, Y: 600})
	child := root.ChildScreen(ChildOptions{})
	assert.Panics(t, func() { child.Post(func() {}, false) })
}

func TestPostDropsWhenFull(t *testing.T) {
	root := testRoot(t, Size{X: 800, Y: 600}, Size{X: 800, Y: 600})
	ran := 0
	for range eventQueueSize {
		root.Post(func() { ran++ }, true)
	}
	// The queue is saturated; this one must be dropped, not block.
	root.Post(func() { ran += 1000 }, true)
	root.drainEvents()
	assert.Equal(t, eventQueueSize, ran)
}
