package queue

import "iter"

// Iterator is a forward cursor over the nodes of a Linked queue, head to tail.
// It does not own the node it points at. The iterator returned by End, or one
// advanced past the tail, points at no node.
//
// Popping, resetting or assigning over the queue while an iterator is
// outstanding invalidates it: Value and Next then return ErrStaleIterator.
// Pushing does not.
type Iterator[T any] struct {
	q   *Linked[T]
	cur *Node[T]
	gen uint64
}

// Begin returns an iterator at the head of q.
func (q *Linked[T]) Begin() Iterator[T] {
	return Iterator[T]{q: q, cur: q.head, gen: q.gen}
}

// End returns the iterator positioned past the tail of q.
func (q *Linked[T]) End() Iterator[T] {
	return Iterator[T]{q: q, gen: q.gen}
}

// Valid reports whether it points at a node.
func (it *Iterator[T]) Valid() bool {
	return it.cur != nil
}

// Equal reports whether it and other point at the same node.
func (it *Iterator[T]) Equal(other Iterator[T]) bool {
	return it.cur == other.cur
}

// Value returns a pointer to the payload of the current node. The caller may
// modify the value through it.
func (it *Iterator[T]) Value() (*T, error) {
	if err := it.check(); err != nil {
		return nil, err
	}
	return &it.cur.Value, nil
}

// Next advances it to the following node.
func (it *Iterator[T]) Next() error {
	if err := it.check(); err != nil {
		return err
	}
	it.cur = it.cur.next
	return nil
}

func (it *Iterator[T]) check() error {
	if it.q != nil && it.q.gen != it.gen {
		return ErrStaleIterator
	}
	if it.cur == nil {
		return ErrIteratorEnd
	}
	return nil
}

// All returns an iterator over the values of q, head to tail.
// It panics with ErrStaleIterator if q has nodes removed during the range.
func (q *Linked[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for p := range q.Pointers() {
			if !yield(*p) {
				return
			}
		}
	}
}

// Pointers returns an iterator over pointers to the values of q, head to tail.
// It panics with ErrStaleIterator if q has nodes removed during the range.
func (q *Linked[T]) Pointers() iter.Seq[*T] {
	return func(yield func(*T) bool) {
		gen := q.gen
		for cur := q.head; cur != nil; cur = cur.next {
			if !yield(&cur.Value) {
				return
			}
			if q.gen != gen {
				panic(ErrStaleIterator)
			}
		}
	}
}

// Values returns the values of q, head to tail, in a new slice.
func (q *Linked[T]) Values() []T {
	values := make([]T, 0, q.count)
	for cur := q.head; cur != nil; cur = cur.next {
		values = append(values, cur.Value)
	}
	return values
}
