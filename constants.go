package main

import "time"

// Page text
const (
	PageTitle    = "The Upside Down Is Spreading"
	PageSubtitle = "Every wrong letter costs one life, you have eight chances before the Upside Down claims them all."
)

// Session configuration constants
const (
	SessionCookieName = "session_id"
)

// Route constants
const (
	RouteHome      = "/"
	RouteNewGame   = "/new-game"
	RouteRefresh   = "/refresh"
	RouteGuess     = "/guess"
	RouteGameState = "/game-state"
	RouteHealthz   = "/healthz"
)

// Storage backend names accepted by STORAGE_BACKEND
const (
	BackendCookie = "cookie"
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Status region kinds
const (
	StatusPrompt = "prompt"
	StatusNotice = "notice"
	StatusWon    = "won"
	StatusLost   = "lost"
)

// janitorInterval is how often idle sessions and stale snapshots are swept.
const janitorInterval = time.Minute

// Keyboard layout and bulb colours
var (
	keyboardRows = []string{"ABCDEFGH", "IJKLMNOPQ", "RSTUVWXYZ"}
	bulbColors   = []string{"blue", "red", "yellow", "green"}
)
