package query

import (
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		query string
		paths []string
	}{
		{"single", "{ personal { name } }", []string{"personal/name/"}},
		{"siblings", "{ personal { name surname } }", []string{"personal/name/", "personal/surname/"}},
		{"multiline", "{\n  personal {\n    name\n  }\n  keys {\n    assertions {\n      key-1\n    }\n  }\n}\n",
			[]string{"keys/assertions/key-1/", "personal/name/"}},
		{"no root braces", "personal { name }\nage", []string{"age/", "personal/name/"}},
		{"tight braces", "{personal{name}}", []string{"personal/name/"}},
		{"quoted", `{ "home address" { "city{x}" } }`, []string{"home address/city{x}/"}},
		{"escaped quote", `{ "a\"b" }`, []string{`a"b/`}},
		{"empty", "", []string{}},
		{"empty root", "{ }", []string{}},
		{"empty scope", "{ personal { } }", []string{}},
		{"duplicates", "{ a a }", []string{"a/"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			sel, err := Parse(tc.query)
			require.NoError(t, err)
			assert.Equal(t, tc.paths, sel.Paths())
			assert.Equal(t, len(tc.paths), sel.Len())
		})
	}
}

func TestParseSyntaxErrors(t *testing.T) {
	tests := []struct {
		name  string
		query string
		pos   string
	}{
		{"pop past root", "{ a } }", "1:7"},
		{"lone close", "}", "1:1"},
		{"unclosed", "{ a {\n b }", "2:4"},
		{"anonymous nested", "{ a { { b } } }", "1:7"},
		{"root twice", "{ a } { b }", "1:7"},
		{"unterminated quote", "{ \"a }", "1:3"},
		{"empty quote", `{ "" }`, "1:3"},
		{"bad escape", `{ "\q" }`, "1:3"},
		{"separator in label", "{ a/b }", "1:3"},
		{"separator in quoted label", `{ a { "b/c" } }`, "1:7"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(tc.query)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrQuerySyntax))
			assert.True(t, strings.Contains(err.Error(), tc.pos), err.Error())
		})
	}
}

func TestSelection(t *testing.T) {
	sel := NewSelection("personal/name/", "keys/assertions/key-1/")
	assert.True(t, sel.Contains("personal/name/"))
	assert.False(t, sel.Contains("personal/"))
	assert.True(t, sel.HasDescendant("personal/"))
	assert.True(t, sel.HasDescendant("keys/assertions/"))
	assert.True(t, sel.HasDescendant(""))
	assert.False(t, sel.HasDescendant("personal/name/"))
	assert.False(t, sel.HasDescendant("person/"))
	assert.Equal(t, "{keys/assertions/key-1/, personal/name/}", sel.String())
}
