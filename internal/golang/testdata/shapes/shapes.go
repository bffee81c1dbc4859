package shapes

import "strings"

const Sides = 4

type Shape struct {
	Name  string
	Scale float64
}

func NewShape(name string) *Shape {
	type scratch struct{ n int }
	label := strings.ToUpper(name)
	return &Shape{Name: label}
}

func (s *Shape) Grow(by float64) *Shape {
	fn := func() {}
	fn()
	s.Scale += by
	return s
}

func (s *Shape) Rename(names ...string) *Shape {
	if len(names) > 0 {
		s.Name = names[0]
	}
	return s
}

func (s Shape) Area() float64 { return s.Scale * s.Scale }

type Square struct {
	Shape
	side int
}

type Grower interface {
	Grow(by float64) *Shape
	Area() float64
}
