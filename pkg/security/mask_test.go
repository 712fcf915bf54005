package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMaskEmail(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"alice@example.com", "a****@example.com"},
		{"ab@example.com", "***@example.com"},
		{"a@example.com", "***@example.com"},
		{"no-at-sign", "***"},
		{"@example.com", "***"},
		{"", "***"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, MaskEmail(tc.in), "input %q", tc.in)
	}
}
