package queue

import "errors"

var (
	// ErrEmptyQueue is returned by Top and Pop when the queue holds no elements.
	ErrEmptyQueue = errors.New("queue is empty!")

	// ErrStaleIterator is returned by an Iterator whose queue had nodes removed
	// after the iterator was obtained.
	ErrStaleIterator = errors.New("queue: iterator used after queue was modified")

	// ErrIteratorEnd is returned when an end-of-sequence Iterator is read or advanced.
	ErrIteratorEnd = errors.New("queue: iterator at end")
)
