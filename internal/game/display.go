package game

import (
	"strings"
	"unicode"
)

// CellKind says how an answer character is drawn.
type CellKind int

const (
	// CellLetter is a guessable a-z character.
	CellLetter CellKind = iota
	// CellGap is a space between words.
	CellGap
	// CellSymbol is any other character; it is always shown.
	CellSymbol
)

// Cell is one character of the blanked answer.
type Cell struct {
	Kind     CellKind
	Char     string // upper-cased for letters, "" while hidden
	Revealed bool
	Missed   bool // not guessed, revealed because the game was lost
}

func isGuessable(r rune) bool {
	r = unicode.ToLower(r)
	return r >= 'a' && r <= 'z'
}

// Cells renders the whole answer, one cell per character.
func (s State) Cells() []Cell {
	return s.cellsFor(s.Item.Answer)
}

// AnswerLines splits the answer after its first word, the way the board
// wraps two-word answers, and renders each line.
func (s State) AnswerLines() [][]Cell {
	parts := strings.Fields(s.Item.Answer)
	if len(parts) <= 1 {
		return [][]Cell{s.cellsFor(s.Item.Answer)}
	}
	return [][]Cell{
		s.cellsFor(parts[0]),
		s.cellsFor(strings.Join(parts[1:], " ")),
	}
}

func (s State) cellsFor(text string) []Cell {
	lost := s.IsLost()
	cells := make([]Cell, 0, len(text))
	for _, r := range text {
		switch {
		case r == ' ':
			cells = append(cells, Cell{Kind: CellGap})
		case !isGuessable(r):
			cells = append(cells, Cell{Kind: CellSymbol, Char: string(r), Revealed: true})
		default:
			guessed := s.Guessed.Has(string(unicode.ToLower(r)))
			c := Cell{Kind: CellLetter, Revealed: lost || guessed, Missed: lost && !guessed}
			if c.Revealed {
				c.Char = string(unicode.ToUpper(r))
			}
			cells = append(cells, c)
		}
	}
	return cells
}

// SpokenAnswer spells the board for screen readers: guessed letters, "blank."
// for hidden ones, "space." between words.
func (s State) SpokenAnswer() string {
	words := make([]string, 0, len(s.Item.Answer))
	for _, r := range s.Item.Answer {
		switch {
		case r == ' ':
			words = append(words, "space.")
		case !isGuessable(r):
			words = append(words, string(r)+".")
		default:
			lower := string(unicode.ToLower(r))
			if s.Guessed.Has(lower) {
				words = append(words, lower+".")
			} else {
				words = append(words, "blank.")
			}
		}
	}
	return strings.Join(words, " ")
}

// IsGap reports whether the cell is a word gap.
func (c Cell) IsGap() bool { return c.Kind == CellGap }

// IsSymbol reports whether the cell is an always-shown non-letter.
func (c Cell) IsSymbol() bool { return c.Kind == CellSymbol }
