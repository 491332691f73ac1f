// internal/container/container.go
package container

import (
	"fmt"
	"reflect"
)

// Container is a type-keyed registry populated once at startup and
// read-only afterwards. Resolving an unregistered type panics: a wiring
// mistake is a programming error, not a runtime condition.
type Container struct {
	entries map[reflect.Type]any
}

func New() *Container {
	return &Container{entries: make(map[reflect.Type]any)}
}

// Register stores instance under its concrete type T.
func Register[T any](c *Container, instance T) {
	key := reflect.TypeOf((*T)(nil)).Elem()
	if _, dup := c.entries[key]; dup {
		panic(fmt.Sprintf("container: %s registered twice", key))
	}
	c.entries[key] = instance
}

// Resolve returns the instance registered under T.
func Resolve[T any](c *Container) T {
	key := reflect.TypeOf((*T)(nil)).Elem()
	instance, ok := c.entries[key]
	if !ok {
		panic(fmt.Sprintf("container: %s not registered", key))
	}
	return instance.(T)
}
