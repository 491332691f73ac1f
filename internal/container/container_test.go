// internal/container/container_test.go
package container

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type widget struct {
	name string
}

type greeter interface {
	Greet() string
}

type english struct{}

func (english) Greet() string { return "hello" }

func TestRegisterAndResolve(t *testing.T) {
	c := New()
	Register(c, &widget{name: "w"})

	got := Resolve[*widget](c)
	require.NotNil(t, got)
	assert.Equal(t, "w", got.name)
}

func TestRegisterInterfaceKey(t *testing.T) {
	c := New()
	Register[greeter](c, english{})

	got := Resolve[greeter](c)
	assert.Equal(t, "hello", got.Greet())
}

func TestDuplicateRegistrationPanics(t *testing.T) {
	c := New()
	Register(c, &widget{name: "first"})

	assert.Panics(t, func() {
		Register(c, &widget{name: "second"})
	})
}

func TestResolveUnregisteredPanics(t *testing.T) {
	c := New()
	assert.Panics(t, func() {
		Resolve[*widget](c)
	})
}
