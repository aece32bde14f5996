package queue

var _ Queue[int] = (*Linked[int])(nil)

// Linked is an unbounded FIFO queue backed by a singly linked chain of nodes.
// Push touches only the tail and Pop only the head, both in O(1).
//
// The zero value is an empty queue that allocates with HeapAllocator.
// Every node belongs to exactly one Linked; Clone and Assign build new chains.
// It is NOT thread-safe.
type Linked[T any] struct {
	head  *Node[T]
	tail  *Node[T]
	count int
	alloc Allocator[T]
	gen   uint64 // incremented on every node removal
}

// New creates an empty queue that allocates with HeapAllocator.
func New[T any]() *Linked[T] {
	return &Linked[T]{}
}

// NewWithAllocator creates an empty queue whose nodes come from alloc.
// A nil alloc means HeapAllocator.
func NewWithAllocator[T any](alloc Allocator[T]) *Linked[T] {
	return &Linked[T]{alloc: alloc}
}

// Allocator returns the allocator used for q's nodes.
func (q *Linked[T]) Allocator() Allocator[T] {
	if q.alloc == nil {
		return HeapAllocator[T]{}
	}
	return q.alloc
}

// Push allocates a node holding item and appends it at the tail.
// Iterators obtained earlier stay valid.
func (q *Linked[T]) Push(item T) {
	n := q.Allocator().Allocate(item)
	n.next = nil
	q.pushBack(n)
}

// Pop removes the head node and releases it to the allocator.
func (q *Linked[T]) Pop() error {
	n := q.popFront()
	if n == nil {
		return ErrEmptyQueue
	}
	q.Allocator().Release(n)
	return nil
}

// Top returns a pointer to the front value. The pointer stays valid until
// that node is popped or q is reset or assigned over.
func (q *Linked[T]) Top() (*T, error) {
	if q.head == nil {
		return nil, ErrEmptyQueue
	}
	return &q.head.Value, nil
}

// Empty reports whether q holds no nodes.
func (q *Linked[T]) Empty() bool {
	return q.head == nil
}

// Len returns the number of nodes in q.
func (q *Linked[T]) Len() int {
	return q.count
}

// Clone returns a deep copy of q using the same allocator.
// The copy shares no node with q.
func (q *Linked[T]) Clone() *Linked[T] {
	c := &Linked[T]{alloc: q.alloc}
	c.head, c.tail, c.count = q.copyChain(c.Allocator())
	return c
}

// Assign replaces the contents of q with a deep copy of src.
// The copy is allocated with q's allocator before the previous contents of q
// are released, so a panicking allocator leaves q as it was.
// A nil src empties q.
func (q *Linked[T]) Assign(src *Linked[T]) {
	if src == q {
		return
	}
	if src == nil {
		q.Reset()
		return
	}

	head, tail, count := src.copyChain(q.Allocator())
	q.Reset()
	q.head, q.tail, q.count = head, tail, count
}

// Reset releases every node in head-to-tail order and leaves q empty.
// The allocator is kept.
func (q *Linked[T]) Reset() {
	alloc := q.Allocator()
	for n := q.popFront(); n != nil; n = q.popFront() {
		alloc.Release(n)
	}
}

// copyChain allocates a copy of every node of q, head to tail inclusive.
// If alloc panics, the nodes copied so far are released before the panic
// propagates.
func (q *Linked[T]) copyChain(alloc Allocator[T]) (head, tail *Node[T], count int) {
	done := false
	defer func() {
		if done {
			return
		}
		releaseChain(alloc, head)
	}()

	for cur := q.head; cur != nil; cur = cur.next {
		n := alloc.Allocate(cur.Value)
		n.next = nil
		if tail == nil {
			head = n
		} else {
			tail.next = n
		}
		tail = n
		count++
	}

	done = true
	return head, tail, count
}

// releaseChain releases n and every node after it.
func releaseChain[T any](alloc Allocator[T], n *Node[T]) {
	for n != nil {
		next := n.next
		n.next = nil
		alloc.Release(n)
		n = next
	}
}

// popFront unlinks and returns the head node.
func (q *Linked[T]) popFront() *Node[T] {
	if q.head == nil {
		return nil
	}

	front := q.head
	q.head = front.next
	if q.head == nil {
		q.tail = nil
	}

	front.next = nil
	q.count--
	q.gen++

	return front
}

// pushBack links n at the tail.
func (q *Linked[T]) pushBack(n *Node[T]) {
	if q.tail == nil {
		q.head = n
	} else {
		q.tail.next = n
	}

	q.tail = n
	q.count++
}
