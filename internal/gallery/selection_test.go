package gallery

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelection_Toggle(t *testing.T) {
	sel := NewSelection()

	assert.True(t, sel.Toggle("photo-1"), "first toggle selects")
	assert.True(t, sel.Has("photo-1"))
	assert.Equal(t, 1, sel.Len())

	assert.False(t, sel.Toggle("photo-1"), "second toggle deselects")
	assert.False(t, sel.Has("photo-1"))
	assert.Equal(t, 0, sel.Len())
}

func TestSelection_OrderPreserved(t *testing.T) {
	sel := NewSelection()

	sel.Toggle("photo-3")
	sel.Toggle("photo-1")
	sel.Toggle("photo-2")

	assert.Equal(t, []string{"photo-3", "photo-1", "photo-2"}, sel.IDs())

	sel.Toggle("photo-1")
	assert.Equal(t, []string{"photo-3", "photo-2"}, sel.IDs())
}

func TestSelection_Clear(t *testing.T) {
	sel := NewSelection()

	sel.Toggle("photo-1")
	sel.Toggle("photo-2")
	sel.Clear()

	assert.Equal(t, 0, sel.Len())
	assert.Empty(t, sel.IDs())
	assert.False(t, sel.Has("photo-1"))
}

func TestSelection_Remove(t *testing.T) {
	sel := NewSelection()

	sel.Toggle("photo-1")
	sel.Remove("photo-1")
	assert.False(t, sel.Has("photo-1"))

	// Removing a photo that isn't selected is a no-op.
	sel.Remove("photo-2")
	assert.Equal(t, 0, sel.Len())
}
