package model

// Decorator adjusts a loop model after the canonical parse-derived structure
// has been built and before it reaches a renderer.
type Decorator interface {
	Decorate(*File) error
}

// DecoratorFunc adapts a function into a Decorator.
type DecoratorFunc func(*File) error

// Decorate calls the underlying function.
func (fn DecoratorFunc) Decorate(file *File) error {
	return fn(file)
}
