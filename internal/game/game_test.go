package game

import (
	"testing"
	"time"

	"upsidedown/internal/trivia"
)

var (
	itemGate    = trivia.Item{ID: 4, Prompt: "What interdimensional opening connects both worlds?", Answer: "Gate"}
	itemTigers  = trivia.Item{ID: 3, Prompt: "What basketball team did Lucas win the championship with?", Answer: "Hawkins Tigers"}
	itemScoops  = trivia.Item{ID: 11, Prompt: "What ice cream shop is located inside Starcourt Mall?", Answer: "Scoops Ahoy"}
	itemDustins = trivia.Item{ID: 40, Prompt: "Punctuation test", Answer: "Dustin's Cap!"}
)

func testCatalog(t *testing.T, items ...trivia.Item) *trivia.Catalog {
	t.Helper()
	c, err := trivia.New(items)
	if err != nil {
		t.Fatalf("trivia.New: %v", err)
	}
	return c
}

func guessAll(s State, letters ...string) State {
	for _, l := range letters {
		s, _, _ = Apply(s, Guess{Letter: l}, nil)
	}
	return s
}

func TestNormalizeLetter(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"a", "a", true},
		{" G ", "g", true},
		{"Z", "z", true},
		{"", "", false},
		{"ab", "", false},
		{"1", "", false},
		{"é", "", false},
		{"-", "", false},
	}
	for _, c := range cases {
		got, ok := NormalizeLetter(c.in)
		if got != c.want || ok != c.ok {
			t.Errorf("NormalizeLetter(%q) = %q, %v; want %q, %v", c.in, got, ok, c.want, c.ok)
		}
	}
}

func TestNormalizeAnswer(t *testing.T) {
	if got := NormalizeAnswer("Hawkins Tigers"); got != "hawkinstigers" {
		t.Errorf("NormalizeAnswer = %q", got)
	}
	if got := NormalizeAnswer("Dustin's Cap!"); got != "dustinscap" {
		t.Errorf("NormalizeAnswer = %q", got)
	}
}

func TestLettersSet(t *testing.T) {
	l := NewLetters("A", "b", "a", "7", "bb", "c")
	if got := l.Slice(); len(got) != 3 || got[0] != "a" || got[1] != "b" || got[2] != "c" {
		t.Errorf("NewLetters = %v, want [a b c]", got)
	}
	next, ok := l.Add("d")
	if !ok || next.Len() != 4 || l.Len() != 3 {
		t.Errorf("Add mutated receiver or failed: next=%v l=%v", next.Slice(), l.Slice())
	}
	if _, ok := next.Add("D"); ok {
		t.Error("Add of an existing letter should report false")
	}
	if last, ok := next.Last(); !ok || last != "d" {
		t.Errorf("Last = %q, %v", last, ok)
	}
	var empty Letters
	if _, ok := empty.Last(); ok {
		t.Error("empty Last should be absent")
	}
}

func TestGuessIdempotent(t *testing.T) {
	s := State{Item: itemGate}
	for _, l := range []string{"g", "x"} {
		once, changed, _ := Apply(s, Guess{Letter: l}, nil)
		if !changed {
			t.Fatalf("first guess %q should change state", l)
		}
		twice, changed, _ := Apply(once, Guess{Letter: l}, nil)
		if changed {
			t.Errorf("second guess %q should be a no-op", l)
		}
		if twice.Guessed.Len() != once.Guessed.Len() || twice.WrongCount() != once.WrongCount() {
			t.Errorf("repeat guess %q altered state", l)
		}
	}
}

func TestInvalidGuessIgnored(t *testing.T) {
	s := State{Item: itemGate}
	for _, in := range []string{"", "ga", "1", "?"} {
		if _, changed, _ := Apply(s, Guess{Letter: in}, nil); changed {
			t.Errorf("guess %q should be ignored", in)
		}
	}
}

func TestWinAnyOrder(t *testing.T) {
	orders := [][]string{
		{"g", "a", "t", "e"},
		{"e", "t", "a", "g"},
		{"t", "G", "e", "A"},
	}
	for _, order := range orders {
		s := guessAll(State{Item: itemGate}, order...)
		if !s.IsWon() || s.WrongCount() != 0 || s.IsLost() || !s.IsOver() {
			t.Errorf("order %v: won=%v wrong=%d", order, s.IsWon(), s.WrongCount())
		}
	}
}

func TestLoseAfterEightWrong(t *testing.T) {
	s := guessAll(State{Item: itemGate}, "g", "x", "y", "z", "q", "b", "c", "d")
	if s.IsLost() {
		t.Fatal("seven wrong guesses should not lose")
	}
	s = guessAll(s, "f")
	if !s.IsLost() || s.IsWon() || s.WrongCount() != 8 {
		t.Fatalf("lost=%v won=%v wrong=%d", s.IsLost(), s.IsWon(), s.WrongCount())
	}
	if s.GuessesLeft() != 0 {
		t.Errorf("GuessesLeft = %d, want 0", s.GuessesLeft())
	}
	after := guessAll(s, "a", "t", "e", "h")
	if after.Guessed.Len() != s.Guessed.Len() {
		t.Error("guesses after a loss should be no-ops")
	}
}

func TestWonGameIgnoresGuesses(t *testing.T) {
	s := guessAll(State{Item: itemGate}, "g", "a", "t", "e")
	if _, changed, _ := Apply(s, Guess{Letter: "x"}, nil); changed {
		t.Error("guess after a win should be a no-op")
	}
}

func TestWrongCountCountsDistinctLetters(t *testing.T) {
	s := guessAll(State{Item: itemTigers}, "x", "x", "X", "h", "q")
	if s.WrongCount() != 2 {
		t.Errorf("WrongCount = %d, want 2", s.WrongCount())
	}
	if !s.LastGuessWrong() {
		t.Error("last guess q should be wrong")
	}
	s = guessAll(s, "a")
	if s.LastGuessWrong() {
		t.Error("last guess a should be right")
	}
}

func TestEmptyAnswerNeverWon(t *testing.T) {
	s := State{Item: trivia.Item{ID: 1, Answer: "!!"}}
	if s.IsWon() {
		t.Error("an answer without letters should not be won")
	}
}

func TestNewGamePicksDifferentQuestion(t *testing.T) {
	c := testCatalog(t, itemGate, itemTigers)
	s := guessAll(State{Item: itemGate}, "g", "x")
	next, changed, err := Apply(s, NewGame{}, c)
	if err != nil || !changed {
		t.Fatalf("NewGame: changed=%v err=%v", changed, err)
	}
	if next.Guessed.Len() != 0 {
		t.Error("NewGame should clear guessed letters")
	}
	if next.Item.ID != itemTigers.ID {
		t.Errorf("NewGame picked %d, want %d", next.Item.ID, itemTigers.ID)
	}
}

func TestNewGameEmptyCatalog(t *testing.T) {
	if _, _, err := Apply(State{Item: itemGate}, NewGame{}, testCatalog(t)); err == nil {
		t.Error("expected error from an empty catalog")
	}
}

func TestStart(t *testing.T) {
	c := testCatalog(t, itemGate, itemTigers)
	s, err := Start(c, &Seed{QuestionID: itemTigers.ID, Letters: []string{"h", "x", "H"}})
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if s.Item.ID != itemTigers.ID || s.Guessed.Len() != 2 {
		t.Errorf("Start seeded %d with %v", s.Item.ID, s.Guessed.Slice())
	}
	s, err = Start(c, &Seed{QuestionID: 999, Letters: []string{"h"}})
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if s.Guessed.Len() != 0 {
		t.Error("unknown question id should start with no letters")
	}
	if _, err := Start(testCatalog(t), nil); err == nil {
		t.Error("Start on an empty catalog should fail")
	}
}

func TestCellsAndLines(t *testing.T) {
	s := State{Item: itemTigers}
	cells := s.Cells()
	if len(cells) != len("Hawkins Tigers") {
		t.Fatalf("got %d cells", len(cells))
	}
	blanks := 0
	for i, c := range cells {
		switch c.Kind {
		case CellLetter:
			if c.Revealed || c.Char != "" {
				t.Errorf("cell %d revealed before any guess", i)
			}
			blanks++
		case CellGap:
			if i != 7 {
				t.Errorf("gap at %d, want 7", i)
			}
		}
	}
	if blanks != 13 {
		t.Errorf("blanks = %d, want 13", blanks)
	}

	lines := s.AnswerLines()
	if len(lines) != 2 || len(lines[0]) != 7 || len(lines[1]) != 6 {
		t.Errorf("AnswerLines shape = %d lines", len(lines))
	}

	s = guessAll(s, "k")
	if c := s.Cells()[3]; !c.Revealed || c.Char != "K" {
		t.Errorf("cell 3 = %+v, want revealed K", c)
	}

	p := State{Item: itemDustins}
	for i, c := range p.Cells() {
		if c.Kind == CellSymbol && (!c.Revealed || c.Char == "") {
			t.Errorf("symbol cell %d should always be shown", i)
		}
	}
}

func TestCellsRevealOnLoss(t *testing.T) {
	s := guessAll(State{Item: itemGate}, "g", "b", "c", "d", "f", "h", "i", "j", "k")
	if !s.IsLost() {
		t.Fatal("expected a loss")
	}
	cells := s.Cells()
	if cells[0].Missed || !cells[0].Revealed {
		t.Errorf("guessed G should be revealed, not missed: %+v", cells[0])
	}
	if !cells[1].Missed || cells[1].Char != "A" {
		t.Errorf("unguessed A should be revealed as missed: %+v", cells[1])
	}
}

func TestSpokenAnswer(t *testing.T) {
	s := guessAll(State{Item: itemScoops}, "s", "o")
	want := "s. blank. o. o. blank. s. space. blank. blank. o. blank."
	if got := s.SpokenAnswer(); got != want {
		t.Errorf("SpokenAnswer = %q, want %q", got, want)
	}
}

func TestEliminationMessageDeterministic(t *testing.T) {
	if got, want := EliminationMessage("gate", 1), "Joyce vanished into the shadows."; got != want {
		t.Errorf("EliminationMessage = %q, want %q", got, want)
	}
	if got, want := EliminationMessage("gate", 2), "Not Nancy! Try another letter."; got != want {
		t.Errorf("EliminationMessage = %q, want %q", got, want)
	}
	if EliminationMessage("demogorgon", 3) != EliminationMessage("demogorgon", 3) {
		t.Error("same inputs should give the same message")
	}
	if got := EliminationMessage("gate", 42); got == "" {
		t.Error("out of roster wrong count should still give a message")
	}
}

func TestSurvivors(t *testing.T) {
	last, second := Survivors()
	if last.Name != "Dustin" || second.Name != "Steve" {
		t.Errorf("Survivors = %s, %s", last.Name, second.Name)
	}
}

type fakeTimer struct {
	f       func()
	stopped bool
}

func (t *fakeTimer) Stop() bool {
	was := !t.stopped
	t.stopped = true
	return was
}

type fakeScheduler struct {
	timers []*fakeTimer
	delays []time.Duration
}

func (s *fakeScheduler) AfterFunc(d time.Duration, f func()) Timer {
	t := &fakeTimer{f: f}
	s.timers = append(s.timers, t)
	s.delays = append(s.delays, d)
	return t
}

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time { return c.t }

func newTestSession(t *testing.T, items ...trivia.Item) (*Session, *fakeScheduler, *fakeClock) {
	t.Helper()
	sched := &fakeScheduler{}
	clock := &fakeClock{t: time.Unix(1_700_000_000, 0)}
	sess, err := NewSession(testCatalog(t, items...), &Seed{QuestionID: items[0].ID},
		WithScheduler(sched), WithClock(clock.Now))
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	return sess, sched, clock
}

func TestSessionWrongGuessRaisesNotice(t *testing.T) {
	sess, sched, _ := newTestSession(t, itemGate, itemTigers)
	if !sess.Guess("x") {
		t.Fatal("wrong guess should change state")
	}
	n, ok := sess.Notice()
	if !ok || n.Message != "Joyce vanished into the shadows." {
		t.Fatalf("Notice = %+v, %v", n, ok)
	}
	if len(sched.timers) != 1 || sched.delays[0] != DefaultNoticeDuration {
		t.Fatalf("expected one %v timer, got %v", DefaultNoticeDuration, sched.delays)
	}
	sched.timers[0].f()
	if _, ok := sess.Notice(); ok {
		t.Error("notice should clear when its timer fires")
	}
}

func TestSessionCorrectGuessNoNotice(t *testing.T) {
	sess, sched, _ := newTestSession(t, itemGate)
	sess.Guess("g")
	if _, ok := sess.Notice(); ok {
		t.Error("correct guess should not raise a notice")
	}
	if len(sched.timers) != 0 {
		t.Error("correct guess should not schedule a timer")
	}
	if sess.Guess("g") {
		t.Error("repeat guess should report no change")
	}
}

func TestSessionSupersedeCancelsTimer(t *testing.T) {
	sess, sched, _ := newTestSession(t, itemGate, itemTigers)
	sess.Guess("x")
	sess.Guess("y")
	if len(sched.timers) != 2 {
		t.Fatalf("timers = %d, want 2", len(sched.timers))
	}
	if !sched.timers[0].stopped {
		t.Error("first timer should be stopped by the second wrong guess")
	}
	// A stale callback that raced its Stop must not clear the newer notice.
	sched.timers[0].f()
	n, ok := sess.Notice()
	if !ok || n.Message != EliminationMessage("gate", 2) {
		t.Errorf("Notice = %+v, %v; want the second message", n, ok)
	}

	if err := sess.NewGame(); err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	if !sched.timers[1].stopped {
		t.Error("NewGame should stop the pending timer")
	}
	if _, ok := sess.Notice(); ok {
		t.Error("NewGame should clear the notice")
	}
}

func TestSessionNoticeClearedByCorrectGuess(t *testing.T) {
	sess, sched, _ := newTestSession(t, itemGate)
	sess.Guess("x")
	sess.Guess("g")
	if _, ok := sess.Notice(); ok {
		t.Error("a newer guess should supersede the notice")
	}
	if !sched.timers[0].stopped {
		t.Error("timer should be stopped")
	}
}

func TestSessionNoticeExpiresByClock(t *testing.T) {
	sess, _, clock := newTestSession(t, itemGate)
	sess.Guess("x")
	clock.t = clock.t.Add(DefaultNoticeDuration - time.Millisecond)
	if _, ok := sess.Notice(); !ok {
		t.Error("notice should still show just before expiry")
	}
	clock.t = clock.t.Add(time.Millisecond)
	if _, ok := sess.Notice(); ok {
		t.Error("notice should be hidden at expiry")
	}
}

func TestSessionGameOverSuppressesNotice(t *testing.T) {
	sess, sched, _ := newTestSession(t, itemGate)
	for _, l := range []string{"b", "c", "d", "f", "h", "i", "j"} {
		sess.Guess(l)
	}
	before := len(sched.timers)
	sess.Guess("k")
	if !sess.State().IsLost() {
		t.Fatal("expected a loss")
	}
	if len(sched.timers) != before {
		t.Error("losing guess should not schedule a notice")
	}
	if !sched.timers[before-1].stopped {
		t.Error("game over should cancel the pending notice timer")
	}
	if _, ok := sess.Notice(); ok {
		t.Error("no notice after game over")
	}
	if sess.Guess("a") {
		t.Error("guess after loss should be a no-op")
	}
}

func TestSessionClose(t *testing.T) {
	sess, sched, _ := newTestSession(t, itemGate)
	sess.Guess("x")
	sess.Close()
	if !sched.timers[0].stopped {
		t.Error("Close should stop the pending timer")
	}
}

func TestWithNoticeDuration(t *testing.T) {
	sched := &fakeScheduler{}
	sess, err := NewSession(testCatalog(t, itemGate), nil, WithScheduler(sched), WithNoticeDuration(5*time.Second))
	if err != nil {
		t.Fatal(err)
	}
	sess.Guess("x")
	if sched.delays[0] != 5*time.Second {
		t.Errorf("delay = %v, want 5s", sched.delays[0])
	}
}
