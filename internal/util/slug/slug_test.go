package slug

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFrom(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Desk Lamp", "desk-lamp"},
		{"  Men's T-Shirts & Tops  ", "men-s-t-shirts-tops"},
		{"Café Crème", "cafe-creme"},
		{"Größe XL", "grosse-xl"},
		{"日本", "ri-ben"},
		{"---", ""},
		{"", ""},
		{"Already-a-slug-42", "already-a-slug-42"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, From(tt.in))
		})
	}
}

func TestValid(t *testing.T) {
	assert.True(t, Valid("desk-lamp"))
	assert.True(t, Valid("x1"))
	assert.False(t, Valid("Desk-Lamp"))
	assert.False(t, Valid("desk--lamp"))
	assert.False(t, Valid("-desk"))
	assert.False(t, Valid(""))
}

func TestOrFrom(t *testing.T) {
	assert.Equal(t, "custom", OrFrom(" custom ", "Desk Lamp"))
	assert.Equal(t, "desk-lamp", OrFrom("  ", "Desk Lamp"))
}
