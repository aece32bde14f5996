package queue

import (
	"sync"
	"sync/atomic"
)

// Node is a single storage cell of a Linked queue.
// Allocators create and recycle nodes; only the queue links them.
type Node[T any] struct {
	Value T
	next  *Node[T]
}

// Allocator obtains and releases storage for one node at a time.
type Allocator[T any] interface {
	// Allocate returns a node holding value.
	Allocate(value T) *Node[T]

	// Release takes back a node that is no longer linked into any queue.
	Release(n *Node[T])
}

var (
	_ Allocator[int] = HeapAllocator[int]{}
	_ Allocator[int] = (*PoolAllocator[int])(nil)
	_ Allocator[int] = (*CountingAllocator[int])(nil)
)

// HeapAllocator allocates every node on the Go heap.
// It is the default allocator of a Linked queue.
type HeapAllocator[T any] struct{}

// Allocate implements Allocator.
func (HeapAllocator[T]) Allocate(value T) *Node[T] {
	return &Node[T]{Value: value}
}

// Release implements Allocator. It drops the value so the garbage collector
// can reclaim anything it references.
func (HeapAllocator[T]) Release(n *Node[T]) {
	var zero T
	n.Value = zero
}

// PoolStats holds allocation counters of a PoolAllocator.
type PoolStats struct {
	Allocs   uint64 // nodes handed out
	Releases uint64 // nodes given back
	Reuses   uint64 // allocations served by a recycled node
}

// PoolAllocator recycles released nodes through a sync.Pool.
// The zero value is ready to use.
type PoolAllocator[T any] struct {
	pool     sync.Pool
	allocs   atomic.Uint64
	releases atomic.Uint64
	reuses   atomic.Uint64
}

// NewPoolAllocator creates an empty PoolAllocator.
func NewPoolAllocator[T any]() *PoolAllocator[T] {
	return &PoolAllocator[T]{}
}

// Allocate implements Allocator.
func (p *PoolAllocator[T]) Allocate(value T) *Node[T] {
	p.allocs.Add(1)

	n, ok := p.pool.Get().(*Node[T])
	if ok {
		p.reuses.Add(1)
	} else {
		n = new(Node[T])
	}
	n.Value = value
	n.next = nil
	return n
}

// Release implements Allocator.
func (p *PoolAllocator[T]) Release(n *Node[T]) {
	if n == nil {
		return
	}
	p.releases.Add(1)

	var zero T
	n.Value = zero
	n.next = nil
	p.pool.Put(n)
}

// Stats returns a snapshot of the allocation counters.
func (p *PoolAllocator[T]) Stats() PoolStats {
	return PoolStats{
		Allocs:   p.allocs.Load(),
		Releases: p.releases.Load(),
		Reuses:   p.reuses.Load(),
	}
}

// CountingAllocator wraps another allocator and counts the nodes that pass
// through it. A nil Base falls back to HeapAllocator.
type CountingAllocator[T any] struct {
	Base Allocator[T]

	allocated uint64
	released  uint64
}

// NewCountingAllocator wraps base. A nil base means HeapAllocator.
func NewCountingAllocator[T any](base Allocator[T]) *CountingAllocator[T] {
	return &CountingAllocator[T]{Base: base}
}

func (c *CountingAllocator[T]) base() Allocator[T] {
	if c.Base == nil {
		return HeapAllocator[T]{}
	}
	return c.Base
}

// Allocate implements Allocator.
func (c *CountingAllocator[T]) Allocate(value T) *Node[T] {
	n := c.base().Allocate(value)
	c.allocated++
	return n
}

// Release implements Allocator.
func (c *CountingAllocator[T]) Release(n *Node[T]) {
	c.base().Release(n)
	c.released++
}

// Allocated returns the number of nodes allocated so far.
func (c *CountingAllocator[T]) Allocated() uint64 { return c.allocated }

// Released returns the number of nodes released so far.
func (c *CountingAllocator[T]) Released() uint64 { return c.released }

// Live returns the number of nodes allocated but not yet released.
func (c *CountingAllocator[T]) Live() int64 {
	return int64(c.allocated) - int64(c.released)
}
