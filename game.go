package main

import (
	"time"

	"github.com/samber/lo"

	"upsidedown/internal/game"
)

// buildGameView derives the page model from a session.
func buildGameView(sess *game.Session, now time.Time) GameView {
	st := sess.State()
	notice, hasNotice := sess.Notice()

	view := GameView{
		Status:       buildStatus(st, notice, hasNotice),
		Lines:        st.AnswerLines(),
		Keyboard:     buildKeyboard(st),
		Roster:       buildRoster(st.WrongCount()),
		IsOver:       st.IsOver(),
		IsWon:        st.IsWon(),
		IsLost:       st.IsLost(),
		WrongCount:   st.WrongCount(),
		GuessesLeft:  st.GuessesLeft(),
		SpokenAnswer: st.SpokenAnswer(),
	}
	if last, ok := st.LastGuess(); ok {
		view.LastGuess = last
		view.LastCorrect = st.InAnswer(last)
	}
	if hasNotice {
		view.NoticeDelayMs = max(int64(0), notice.ExpiresAt.Sub(now).Milliseconds())
	}
	return view
}

func buildStatus(st game.State, notice game.Notice, hasNotice bool) StatusView {
	switch {
	case st.IsWon():
		return StatusView{Kind: StatusWon}
	case st.IsLost():
		last, second := game.Survivors()
		return StatusView{Kind: StatusLost, LastName: last.Name, SecondName: second.Name}
	case hasNotice:
		return StatusView{Kind: StatusNotice, Message: notice.Message}
	default:
		return StatusView{Kind: StatusPrompt, Prompt: st.Item.Prompt}
	}
}

func buildKeyboard(st game.State) [][]KeyView {
	over := st.IsOver()
	return lo.Map(keyboardRows, func(row string, _ int) []KeyView {
		keys := make([]KeyView, 0, len(row))
		for i := 0; i < len(row); i++ {
			char := row[i]
			letter := string(char + ('a' - 'A'))
			guessed := st.Guessed.Has(letter)
			inAnswer := st.InAnswer(letter)
			keys = append(keys, KeyView{
				Char:     string(char),
				Letter:   letter,
				Correct:  guessed && inAnswer,
				Wrong:    guessed && !inAnswer,
				Disabled: over || guessed,
				Color:    bulbColors[int(char)%len(bulbColors)],
				Rotation: ((i * 7) % 20) - 10,
			})
		}
		return keys
	})
}

func buildRoster(wrong int) []CharacterView {
	return lo.Map(game.Roster, func(c game.Character, i int) CharacterView {
		return CharacterView{
			Name:       c.Name,
			Background: c.Background,
			Foreground: c.Foreground,
			Lost:       i < wrong,
		}
	})
}
