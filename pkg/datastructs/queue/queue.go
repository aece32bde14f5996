// Package queue provides a singly linked FIFO queue with pluggable node
// allocation, cursor and range iteration, and stream adapters.
//
// None of the types in this package are safe for concurrent use. Callers
// sharing a queue between goroutines must synchronize access themselves.
package queue

// Queue is a generic interface for FIFO queues.
type Queue[T any] interface {
	// Push adds an item at the back of the queue.
	Push(item T)

	// Pop removes the front item.
	// Returns ErrEmptyQueue if the queue is empty.
	Pop() error

	// Top returns a pointer to the front item without removing it.
	// Returns ErrEmptyQueue if the queue is empty.
	Top() (*T, error)

	// Empty reports whether the queue holds no items.
	Empty() bool

	// Len returns the number of items in the queue.
	Len() int
}
