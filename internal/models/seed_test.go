package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Grocery Essentials", "grocery-essentials"},
		{"Top Picks in Food", "top-picks-in-food"},
		{"Best Sellers Shopping", "best-sellers-shopping"},
		{"  spaced   out  ", "spaced-out"},
		{"Café & Bar", "café-bar"},
		{"Item #42!", "item-42"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Slugify(tt.in), "Slugify(%q)", tt.in)
	}
}

func TestValidVertical(t *testing.T) {
	for _, v := range Verticals {
		assert.True(t, ValidVertical(v))
	}
	assert.False(t, ValidVertical("electronics"))
	assert.False(t, ValidVertical(""))
	assert.False(t, ValidVertical("Grocery"))
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 25.5, round2(25.4999999))
	assert.Equal(t, 0.3, round2(0.1*3))
	assert.Equal(t, 2.0, round2(2))
}
