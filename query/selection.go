package query

import (
	"sort"
	"strings"
)

// Selection is a set of fully qualified paths, each terminated by "/".
// It implements merkletree.Selector.
type Selection struct {
	paths map[string]struct{}
}

// NewSelection returns a Selection of the given paths.
func NewSelection(paths ...string) *Selection {
	s := &Selection{paths: make(map[string]struct{}, len(paths))}
	for _, p := range paths {
		s.add(p)
	}
	return s
}

func (s *Selection) add(path string) {
	s.paths[path] = struct{}{}
}

// Contains reports whether path is selected.
func (s *Selection) Contains(path string) bool {
	_, ok := s.paths[path]
	return ok
}

// HasDescendant reports whether a selected path lies strictly below path.
func (s *Selection) HasDescendant(path string) bool {
	for p := range s.paths {
		if len(p) > len(path) && strings.HasPrefix(p, path) {
			return true
		}
	}
	return false
}

// Paths returns the selected paths in lexicographic order.
func (s *Selection) Paths() []string {
	paths := make([]string, 0, len(s.paths))
	for p := range s.paths {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Len returns the number of selected paths.
func (s *Selection) Len() int {
	return len(s.paths)
}

func (s *Selection) String() string {
	return "{" + strings.Join(s.Paths(), ", ") + "}"
}
