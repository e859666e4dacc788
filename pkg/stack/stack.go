package stack

import "fmt"

// OverflowError is returned by Push on a full stack.
type OverflowError struct {
	Capacity int
}

func (e *OverflowError) Error() string {
	return fmt.Sprintf("stack overflow: capacity %d exceeded", e.Capacity)
}

// Stack is a LIFO with a fixed capacity.
type Stack[T any] struct {
	a   []T
	cap int
}

// NewStack creates a stack holding at most capacity elements
func NewStack[T any](capacity int) *Stack[T] {
	return &Stack[T]{
		a:   make([]T, 0, capacity),
		cap: capacity,
	}
}

// Push adds an element to the top of the stack
func (s *Stack[T]) Push(elm T) error {
	if len(s.a) >= s.cap {
		return &OverflowError{Capacity: s.cap}
	}

	s.a = append(s.a, elm)
	return nil
}

// Pop removes and returns the top element of the stack
func (s *Stack[T]) Pop() (T, bool) {
	var zero T
	if len(s.a) == 0 {
		return zero, false
	}

	elm := s.a[len(s.a)-1]
	s.a[len(s.a)-1] = zero
	s.a = s.a[:len(s.a)-1]

	return elm, true
}

// Peek returns the top element of the stack without removing it
func (s *Stack[T]) Peek() (T, bool) {
	if len(s.a) == 0 {
		var zero T
		return zero, false
	}

	return s.a[len(s.a)-1], true
}

// Size returns the number of elements on the stack
func (s *Stack[T]) Size() int {
	return len(s.a)
}

// Capacity returns the maximum number of elements
func (s *Stack[T]) Capacity() int {
	return s.cap
}

// Reset empties the stack
func (s *Stack[T]) Reset() {
	clear(s.a)
	s.a = s.a[:0]
}
