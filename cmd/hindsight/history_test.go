package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		max  int
		want string
	}{
		{name: "short string untouched", in: "coffee grinder", max: 20, want: "coffee grinder"},
		{name: "exact length untouched", in: "lamp", max: 4, want: "lamp"},
		{name: "long string gets ellipsis", in: "mechanical keyboard", max: 10, want: "mechanica…"},
		{name: "multibyte title is not split", in: "café au lait Maschine", max: 8, want: "café au…"},
		{name: "cjk title counts runes not bytes", in: "電動コーヒーミル", max: 5, want: "電動コー…"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, truncate(tt.in, tt.max))
		})
	}
}
