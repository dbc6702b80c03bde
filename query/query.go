package query

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/pkg/errors"
)

// ErrQuerySyntax indicates a malformed query.
var ErrQuerySyntax = errors.New("[query] Syntax error")

type tokenKind int

const (
	openBrace tokenKind = iota
	closeBrace
	label
)

type token struct {
	kind      tokenKind
	text      string
	line, col int
}

func syntaxError(line, col int, format string, args ...interface{}) error {
	return errors.Wrapf(ErrQuerySyntax, "%d:%d: %s", line, col, fmt.Sprintf(format, args...))
}

// tokenize splits text into braces and labels.
func tokenize(text string) ([]token, error) {
	var tokens []token
	runes := []rune(text)
	line, col := 1, 1
	advance := func(r rune) {
		if r == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	for i := 0; i < len(runes); {
		r := runes[i]
		switch {
		case unicode.IsSpace(r):
			advance(r)
			i++
		case r == '{' || r == '}':
			kind := openBrace
			if r == '}' {
				kind = closeBrace
			}
			tokens = append(tokens, token{kind: kind, text: string(r), line: line, col: col})
			advance(r)
			i++
		case r == '"':
			startLine, startCol := line, col
			j := i + 1
			for ; j < len(runes) && runes[j] != '"' && runes[j] != '\n'; j++ {
				if runes[j] == '\\' && j+1 < len(runes) {
					j++
				}
			}
			if j >= len(runes) || runes[j] != '"' {
				return nil, syntaxError(startLine, startCol, "unterminated quoted label")
			}
			s, err := strconv.Unquote(string(runes[i : j+1]))
			if err != nil {
				return nil, syntaxError(startLine, startCol, "invalid quoted label: %v", err)
			}
			if s == "" {
				return nil, syntaxError(startLine, startCol, "empty label")
			}
			if strings.ContainsRune(s, '/') {
				return nil, syntaxError(startLine, startCol, "label %q contains '/'", s)
			}
			tokens = append(tokens, token{kind: label, text: s, line: startLine, col: startCol})
			for _, r := range runes[i : j+1] {
				advance(r)
			}
			i = j + 1
		default:
			startCol := col
			j := i
			for ; j < len(runes) && !unicode.IsSpace(runes[j]) && runes[j] != '{' && runes[j] != '}' && runes[j] != '"'; j++ {
				col++
			}
			text := string(runes[i:j])
			if strings.ContainsRune(text, '/') {
				return nil, syntaxError(line, startCol, "label %q contains '/'", text)
			}
			tokens = append(tokens, token{kind: label, text: text, line: line, col: startCol})
			i = j
		}
	}
	return tokens, nil
}

// scope is an entry of the parser's scope stack.
type scope struct {
	path      string
	anonymous bool
}

// Parse parses a query into the Selection of the paths it selects.
func Parse(text string) (*Selection, error) {
	tokens, err := tokenize(text)
	if err != nil {
		return nil, err
	}
	sel := NewSelection()
	stack := []scope{{path: ""}}
	rootOpened := false
	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]
		top := stack[len(stack)-1]
		switch tok.kind {
		case openBrace:
			if len(stack) > 1 {
				return nil, syntaxError(tok.line, tok.col, "unnamed scope inside a scope")
			}
			if rootOpened {
				return nil, syntaxError(tok.line, tok.col, "root scope opened twice")
			}
			rootOpened = true
			stack = append(stack, scope{path: "", anonymous: true})
		case closeBrace:
			if len(stack) == 1 {
				return nil, syntaxError(tok.line, tok.col, "unbalanced '}'")
			}
			stack = stack[:len(stack)-1]
		case label:
			if i+1 < len(tokens) && tokens[i+1].kind == openBrace {
				stack = append(stack, scope{path: top.path + tok.text + "/"})
				i++
				continue
			}
			sel.add(top.path + tok.text + "/")
		}
	}
	if len(stack) > 1 {
		return nil, syntaxError(tokens[len(tokens)-1].line, tokens[len(tokens)-1].col,
			"%d unclosed scope(s)", len(stack)-1)
	}
	return sel, nil
}
