package main

import (
	"sync"
	"time"

	"upsidedown/internal/game"
	"upsidedown/internal/snapshot"
	"upsidedown/internal/trivia"
)

// App holds the server's shared state.
type App struct {
	Config       Config
	Catalog      *trivia.Catalog
	IsProduction bool
	StartTime    time.Time

	// Store is the server-side snapshot backend. It is nil when snapshots
	// live in the browser's cookie.
	Store snapshot.Storage

	Sessions     map[string]*liveSession
	SessionMutex sync.RWMutex

	Limiters     map[string]*clientLimiter
	LimiterMutex sync.Mutex

	sessionOpts []game.Option
	now         func() time.Time
}

// liveSession is one browser's running game.
type liveSession struct {
	game       *game.Session
	lastAccess time.Time
}

// KeyView is one on-screen keyboard key.
type KeyView struct {
	Char     string // upper case label
	Letter   string // lower case form value
	Correct  bool
	Wrong    bool
	Disabled bool
	Color    string
	Rotation int
}

// CharacterView is one roster token.
type CharacterView struct {
	Name       string
	Background string
	Foreground string
	Lost       bool
}

// StatusView drives the status region.
type StatusView struct {
	Kind       string
	Prompt     string
	Message    string
	LastName   string
	SecondName string
}

// GameView is everything the templates render.
type GameView struct {
	Status        StatusView
	Lines         [][]game.Cell
	Keyboard      [][]KeyView
	Roster        []CharacterView
	IsOver        bool
	IsWon         bool
	IsLost        bool
	WrongCount    int
	GuessesLeft   int
	LastGuess     string
	LastCorrect   bool
	SpokenAnswer  string
	NoticeDelayMs int64
}
