package idgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	a, b := New(), New()
	assert.NotEmpty(t, a)
	assert.NotEqual(t, a, b)

	prev := NewFunc
	defer func() { NewFunc = prev }()
	NewFunc = func() string { return "fixed" }
	assert.Equal(t, "fixed", New())
}
