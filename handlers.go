package main

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"upsidedown/internal/game"
	"upsidedown/internal/snapshot"
)

// requestSession resolves the session for the request and its snapshot adapter.
// On failure it has already written a 500 response.
func (app *App) requestSession(c *gin.Context) (*game.Session, *snapshot.Adapter, bool) {
	ctx := c.Request.Context()
	sessionID := app.getOrCreateSession(c)
	persist := app.snapshotAdapter(c, sessionID)
	sess, err := app.getGameSession(ctx, sessionID, persist)
	if err != nil {
		logWarnCtx(ctx, "Failed to start game for session %s: %v", sessionID, err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return nil, nil, false
	}
	return sess, persist, true
}

// homeHandler renders the main game page for the current session.
func (app *App) homeHandler(c *gin.Context) {
	sess, _, ok := app.requestSession(c)
	if !ok {
		return
	}
	c.HTML(http.StatusOK, "index.html", gin.H{
		"title":    PageTitle,
		"subtitle": PageSubtitle,
		"game":     buildGameView(sess, app.now()),
	})
}

// gameStateHandler renders the current game as an HTML fragment.
func (app *App) gameStateHandler(c *gin.Context) {
	sess, _, ok := app.requestSession(c)
	if !ok {
		return
	}
	app.renderGame(c, sess)
}

// guessHandler applies one letter guess. Invalid, repeated and post-game
// guesses re-render the unchanged board.
func (app *App) guessHandler(c *gin.Context) {
	ctx := c.Request.Context()
	sess, persist, ok := app.requestSession(c)
	if !ok {
		return
	}
	letter := c.PostForm("letter")
	if sess.Guess(letter) {
		st := sess.State()
		persist.Save(ctx, st)
		switch {
		case st.IsWon():
			logInfoCtx(ctx, "Player won question %d", st.Item.ID)
		case st.IsLost():
			logInfoCtx(ctx, "Player lost question %d. Answer was: %s", st.Item.ID, st.Item.Answer)
		}
	}
	app.respond(c, sess)
}

// newGameHandler moves the session to a different question.
func (app *App) newGameHandler(c *gin.Context) {
	ctx := c.Request.Context()
	sess, persist, ok := app.requestSession(c)
	if !ok {
		return
	}
	if err := sess.NewGame(); err != nil {
		logWarnCtx(ctx, "Failed to start a new game: %v", err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	persist.Save(ctx, sess.State())
	logInfoCtx(ctx, "New game on question %d", sess.State().Item.ID)
	app.respond(c, sess)
}

// refreshHandler clears the snapshot and the live session, issues a new
// session id and reloads the page as if visiting for the first time.
func (app *App) refreshHandler(c *gin.Context) {
	ctx := c.Request.Context()
	sessionID, _ := c.Cookie(SessionCookieName)
	if sessionID != "" || app.Store == nil {
		app.snapshotAdapter(c, sessionID).Clear(ctx)
	}
	if sessionID != "" {
		app.dropSession(sessionID)
	}
	app.issueSessionID(c)

	if c.GetHeader("HX-Request") == "true" {
		c.Header("HX-Refresh", "true")
		c.Status(http.StatusNoContent)
		return
	}
	c.Redirect(http.StatusSeeOther, RouteHome)
}

// healthzHandler returns a JSON health check with server stats.
func (app *App) healthzHandler(c *gin.Context) {
	app.SessionMutex.RLock()
	live := len(app.Sessions)
	app.SessionMutex.RUnlock()
	c.JSON(http.StatusOK, gin.H{
		"status":           "ok",
		"env":              map[bool]string{true: "production", false: "development"}[app.IsProduction],
		"questions_loaded": app.Catalog.Len(),
		"live_sessions":    live,
		"storage":          app.Config.StorageBackend,
		"uptime":           formatUptime(time.Since(app.StartTime)),
		"timestamp":        time.Now().UTC().Format(time.RFC3339),
	})
}

// respond renders the fragment for HTMX requests and redirects plain form posts.
func (app *App) respond(c *gin.Context, sess *game.Session) {
	if c.GetHeader("HX-Request") == "true" {
		app.renderGame(c, sess)
		return
	}
	c.Redirect(http.StatusSeeOther, RouteHome)
}

func (app *App) renderGame(c *gin.Context, sess *game.Session) {
	c.HTML(http.StatusOK, "game-content", gin.H{
		"game": buildGameView(sess, app.now()),
	})
}
