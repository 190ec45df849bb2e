package game

import "fmt"

// Character is one roster entry eliminated by wrong guesses.
type Character struct {
	Name       string
	Background string
	Foreground string
}

// Roster lists the characters in elimination order.
var Roster = []Character{
	{Name: "Joyce", Background: "#78350F", Foreground: "#FEF3C7"},
	{Name: "Nancy", Background: "#9D174D", Foreground: "#FFF1F2"},
	{Name: "Lucas", Background: "#064E3B", Foreground: "#ECFEFF"},
	{Name: "Will", Background: "#4C1D95", Foreground: "#FDE68A"},
	{Name: "Mike", Background: "#0F172A", Foreground: "#E2E8F0"},
	{Name: "Eleven", Background: "#111827", Foreground: "#FCA5A5"},
	{Name: "Max", Background: "#7F1D1D", Foreground: "#FEE2E2"},
	{Name: "Hopper", Background: "#3F3F46", Foreground: "#E5E7EB"},
	{Name: "Steve", Background: "#1E3A8A", Foreground: "#F9FAFB"},
	{Name: "Dustin", Background: "#92400E", Foreground: "#FFFBEB"},
}

var eliminationTemplates = []string{
	"%s is gone... the Upside Down spreads.",
	"The lights flicker... %s didn’t make it.",
	"Vecna’s curse hit %s.",
	"Not %s! Try another letter.",
	"%s vanished into the shadows.",
	"Hawkins just got darker... goodbye %s.",
}

// EliminatedCharacter returns the roster entry lost on the wrong-th miss.
func EliminatedCharacter(wrong int) (Character, bool) {
	idx := max(0, wrong-1)
	if idx >= len(Roster) {
		return Character{}, false
	}
	return Roster[idx], true
}

// EliminationMessage picks a message for the wrong-th miss. The choice
// depends only on the normalized answer and wrong, so it is reproducible.
func EliminationMessage(normalizedAnswer string, wrong int) string {
	name := "Someone"
	if c, ok := EliminatedCharacter(wrong); ok {
		name = c.Name
	}
	return fmt.Sprintf(eliminationTemplates[messageIndex(normalizedAnswer, wrong)], name)
}

func messageIndex(normalizedAnswer string, wrong int) int {
	seed := len(normalizedAnswer) + wrong*17
	if normalizedAnswer != "" {
		seed += int(normalizedAnswer[0])
	}
	n := len(eliminationTemplates)
	return ((seed % n) + n) % n
}

// Survivors returns the last two roster entries, named in the loss banner.
func Survivors() (last, secondLast Character) {
	return Roster[len(Roster)-1], Roster[len(Roster)-2]
}
