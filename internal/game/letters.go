package game

import (
	"slices"
	"strings"
)

// NormalizeLetter lowercases and trims s and reports whether it is exactly
// one letter a-z.
func NormalizeLetter(s string) (string, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if len(s) != 1 || s[0] < 'a' || s[0] > 'z' {
		return "", false
	}
	return s, true
}

// NormalizeAnswer lowercases answer and drops everything but a-z.
func NormalizeAnswer(answer string) string {
	var b strings.Builder
	b.Grow(len(answer))
	for _, r := range strings.ToLower(answer) {
		if r >= 'a' && r <= 'z' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Letters is an insertion-ordered set of guessed letters. The zero value is
// an empty set. Letters is a value type: Add never mutates the receiver.
type Letters struct {
	order []string
}

// NewLetters builds a set from raw entries, dropping invalid ones and
// duplicates while keeping first-seen order.
func NewLetters(raw ...string) Letters {
	var l Letters
	for _, s := range raw {
		l, _ = l.Add(s)
	}
	return l
}

// Has reports whether letter is in the set.
func (l Letters) Has(letter string) bool {
	return slices.Contains(l.order, letter)
}

// Add returns the set with letter appended and true, or the unchanged set
// and false when letter is invalid or already present.
func (l Letters) Add(letter string) (Letters, bool) {
	letter, ok := NormalizeLetter(letter)
	if !ok || l.Has(letter) {
		return l, false
	}
	return Letters{order: append(slices.Clip(l.order), letter)}, true
}

// Len returns the number of letters.
func (l Letters) Len() int { return len(l.order) }

// Slice returns the letters in guess order.
func (l Letters) Slice() []string { return slices.Clone(l.order) }

// Last returns the most recently added letter.
func (l Letters) Last() (string, bool) {
	if len(l.order) == 0 {
		return "", false
	}
	return l.order[len(l.order)-1], true
}
