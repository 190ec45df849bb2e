// Package game implements the hangman state machine: derived win/loss
// status, the guess and new-game transitions, and the transient elimination
// notice raised by wrong guesses.
package game

import (
	"strings"

	"upsidedown/internal/trivia"
)

// MaxWrongGuesses is the number of distinct wrong letters that loses the game.
const MaxWrongGuesses = 8

// State is the whole game: the current question and the guessed letters.
// Everything else is derived on read.
type State struct {
	Item    trivia.Item
	Guessed Letters
}

// NormalizedAnswer is the answer lowercased with non-letters removed.
func (s State) NormalizedAnswer() string {
	return NormalizeAnswer(s.Item.Answer)
}

// InAnswer reports whether letter occurs in the normalized answer.
func (s State) InAnswer(letter string) bool {
	return letter != "" && strings.Contains(s.NormalizedAnswer(), letter)
}

// WrongCount counts guessed letters absent from the answer.
func (s State) WrongCount() int {
	answer := s.NormalizedAnswer()
	n := 0
	for _, l := range s.Guessed.order {
		if !strings.Contains(answer, l) {
			n++
		}
	}
	return n
}

// GuessesLeft is the number of wrong guesses still allowed.
func (s State) GuessesLeft() int {
	return max(0, MaxWrongGuesses-s.WrongCount())
}

// IsWon reports whether every letter of a non-empty answer was guessed.
func (s State) IsWon() bool {
	answer := s.NormalizedAnswer()
	if answer == "" {
		return false
	}
	for i := 0; i < len(answer); i++ {
		if !s.Guessed.Has(answer[i : i+1]) {
			return false
		}
	}
	return true
}

// IsLost reports whether the wrong guess limit was reached.
func (s State) IsLost() bool {
	return s.WrongCount() >= MaxWrongGuesses
}

// IsOver reports whether the game is won or lost.
func (s State) IsOver() bool {
	return s.IsWon() || s.IsLost()
}

// LastGuess returns the most recent guess.
func (s State) LastGuess() (string, bool) {
	return s.Guessed.Last()
}

// LastGuessWrong reports whether the most recent guess missed.
func (s State) LastGuessWrong() bool {
	last, ok := s.Guessed.Last()
	return ok && !s.InAnswer(last)
}
