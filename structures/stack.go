package structures

import "github.com/pkg/errors"

var ErrEmpty = errors.New("no elements")

type StringStack struct {
	elements []string
}

func (s *StringStack) Push(el ...string) {
	s.elements = append(s.elements, el...)
}

// Pop removes the top element and returns it.
func (s *StringStack) Pop() (string, error) {
	el, err := s.Front()
	if err != nil {
		return "", err
	}
	s.elements = s.elements[:len(s.elements)-1]
	return el, nil
}

func (s *StringStack) Front() (string, error) {
	if len(s.elements) > 0 {
		return s.elements[len(s.elements)-1], nil
	}
	return "", ErrEmpty
}

func (s *StringStack) Len() int {
	return len(s.elements)
}
