package util

// Stack is a last-in first-out list. The zero value is empty and ready to use.
type Stack[T any] struct {
	items []T
}

func (s *Stack[T]) Push(item T) {
	s.items = append(s.items, item)
}

// Pop removes the top item. An empty stack yields the zero value.
func (s *Stack[T]) Pop() T {
	var top T
	if n := len(s.items); n > 0 {
		top, s.items = s.items[n-1], s.items[:n-1]
	}
	return top
}

// Peek returns the top item without removing it.
func (s *Stack[T]) Peek() T {
	var top T
	if n := len(s.items); n > 0 {
		top = s.items[n-1]
	}
	return top
}

func (s *Stack[T]) Len() int {
	return len(s.items)
}

func (s *Stack[T]) Clear() {
	s.items = nil
}
