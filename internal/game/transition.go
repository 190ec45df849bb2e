package game

import (
	"fmt"

	"upsidedown/internal/trivia"
)

// Catalog is the part of the trivia catalog the state machine needs.
type Catalog interface {
	PickRandom() (trivia.Item, error)
	PickDifferentFrom(excludeID, maxAttempts int) (trivia.Item, error)
	FindByID(id int) (trivia.Item, bool)
}

// Intent is a player action fed to Apply.
type Intent interface {
	intent()
}

// Guess tries one letter.
type Guess struct {
	Letter string
}

// NewGame moves to another question with no letters guessed.
type NewGame struct{}

func (Guess) intent()   {}
func (NewGame) intent() {}

// Seed is the part of a saved game used to resume it.
type Seed struct {
	QuestionID int
	Letters    []string
}

// Start builds the initial state. A nil seed, or one naming an unknown
// question, starts on a random question with nothing guessed.
func Start(c Catalog, seed *Seed) (State, error) {
	if seed != nil {
		if item, ok := c.FindByID(seed.QuestionID); ok {
			return State{Item: item, Guessed: NewLetters(seed.Letters...)}, nil
		}
	}
	item, err := c.PickRandom()
	if err != nil {
		return State{}, fmt.Errorf("pick question: %w", err)
	}
	return State{Item: item}, nil
}

// Apply returns the state after intent and whether anything changed.
// Guesses that are invalid, repeated, or made after the game ended are no-ops.
func Apply(s State, in Intent, c Catalog) (State, bool, error) {
	switch in := in.(type) {
	case Guess:
		if s.IsOver() {
			return s, false, nil
		}
		guessed, ok := s.Guessed.Add(in.Letter)
		if !ok {
			return s, false, nil
		}
		return State{Item: s.Item, Guessed: guessed}, true, nil
	case NewGame:
		item, err := c.PickDifferentFrom(s.Item.ID, trivia.DefaultPickAttempts)
		if err != nil {
			return s, false, fmt.Errorf("pick next question: %w", err)
		}
		return State{Item: item}, true, nil
	default:
		return s, false, fmt.Errorf("unknown intent %T", in)
	}
}
