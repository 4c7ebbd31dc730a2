package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeUsername(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Ada Lovelace", "ada_lovelace"},
		{"  Grace   Hopper  ", "grace_hopper"},
		{"J.R.R. Tolkien", "jrr_tolkien"},
		{"O'Brien", "obrien"},
		{"user_42", "user_42"},
		{"ALLCAPS", "allcaps"},
		{"émile zola", "mile_zola"},
		{"", ""},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, NormalizeUsername(tc.in), "input %q", tc.in)
	}
}

func TestNormalizeUsername_Idempotent(t *testing.T) {
	inputs := []string{
		"Ada Lovelace",
		"  spaced   out name ",
		"mixed_CASE 99!",
		"日本語 name",
	}

	for _, in := range inputs {
		once := NormalizeUsername(in)
		assert.Equal(t, once, NormalizeUsername(once), "input %q", in)
	}
}
