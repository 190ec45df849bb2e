package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"upsidedown/internal/game"
	"upsidedown/internal/snapshot"
)

// getOrCreateSession retrieves the session ID from the cookie or creates a new one.
func (app *App) getOrCreateSession(c *gin.Context) string {
	sessionID, err := c.Cookie(SessionCookieName)
	if err != nil || len(sessionID) < 10 {
		sessionID = app.issueSessionID(c)
	}
	return sessionID
}

// issueSessionID sets a fresh session cookie and returns its value.
func (app *App) issueSessionID(c *gin.Context) string {
	sessionID := uuid.NewString()
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(SessionCookieName, sessionID, int(app.Config.CookieMaxAge.Seconds()), "/", "", app.IsProduction, true)
	logInfo("Created new session: %s", sessionID)
	return sessionID
}

// snapshotAdapter returns the persistence adapter for this request. Cookie
// snapshots are bound to the request; server-side ones are keyed by session.
func (app *App) snapshotAdapter(c *gin.Context, sessionID string) *snapshot.Adapter {
	opts := []snapshot.Option{snapshot.WithTTL(app.Config.SnapshotTTL), snapshot.WithClock(app.now)}
	if app.Store == nil {
		store := snapshot.NewCookieStore(c, app.Config.SnapshotTTL, app.IsProduction)
		return snapshot.NewAdapter(store, snapshot.DefaultKey, opts...)
	}
	return snapshot.NewAdapter(app.Store, snapshot.DefaultKey+":"+sessionID, opts...)
}

// getGameSession returns the live session, resuming it from its snapshot
// the first time this server sees the session id. Storage is read and
// written outside SessionMutex.
func (app *App) getGameSession(ctx context.Context, sessionID string, persist *snapshot.Adapter) (*game.Session, error) {
	if sess, ok := app.touchSession(sessionID); ok {
		return sess, nil
	}

	var seed *game.Seed
	snap, resumed := persist.Load(ctx)
	if resumed {
		seed = snap.Seed()
	}
	sess, err := game.NewSession(app.Catalog, seed, app.sessionOpts...)
	if err != nil {
		return nil, err
	}

	app.SessionMutex.Lock()
	if live, ok := app.Sessions[sessionID]; ok {
		// A concurrent request for the same id got there first.
		live.lastAccess = app.now()
		app.SessionMutex.Unlock()
		sess.Close()
		return live.game, nil
	}
	app.Sessions[sessionID] = &liveSession{game: sess, lastAccess: app.now()}
	app.SessionMutex.Unlock()

	if resumed {
		logInfoCtx(ctx, "Resuming session %s on question %d with %d letters", sessionID, snap.QuestionID, len(snap.GuessedLetters))
	} else {
		logInfoCtx(ctx, "New game for session %s on question %d", sessionID, sess.State().Item.ID)
	}
	persist.Save(ctx, sess.State())
	return sess, nil
}

// touchSession returns the live session for sessionID and refreshes its
// last access time.
func (app *App) touchSession(sessionID string) (*game.Session, bool) {
	app.SessionMutex.Lock()
	defer app.SessionMutex.Unlock()
	live, ok := app.Sessions[sessionID]
	if !ok {
		return nil, false
	}
	live.lastAccess = app.now()
	return live.game, true
}

// dropSession forgets a live session and stops its timers.
func (app *App) dropSession(sessionID string) {
	app.SessionMutex.Lock()
	live, ok := app.Sessions[sessionID]
	delete(app.Sessions, sessionID)
	app.SessionMutex.Unlock()
	if ok {
		live.game.Close()
		logInfo("Cleared live session: %s", sessionID)
	}
}

// evictIdleSessions drops sessions idle for longer than SessionTimeout.
func (app *App) evictIdleSessions(now time.Time) int {
	app.SessionMutex.Lock()
	var idle []*liveSession
	for id, live := range app.Sessions {
		if now.Sub(live.lastAccess) > app.Config.SessionTimeout {
			idle = append(idle, live)
			delete(app.Sessions, id)
		}
	}
	app.SessionMutex.Unlock()
	for _, live := range idle {
		live.game.Close()
	}
	return len(idle)
}

// runJanitor periodically evicts idle sessions and rate limiters and sweeps
// stale server-side snapshots until ctx is done.
func (app *App) runJanitor(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			now := app.now()
			if n := app.evictIdleSessions(now); n > 0 {
				logInfo("Evicted %d idle sessions", n)
			}
			if n := app.evictIdleLimiters(now); n > 0 {
				logInfo("Dropped %d idle rate limiters", n)
			}
			if sweeper, ok := app.Store.(snapshot.Sweeper); ok {
				if _, err := sweeper.Sweep(ctx, app.Config.SnapshotTTL); err != nil {
					logWarn("Snapshot sweep failed: %v", err)
				}
			}
		}
	}
}
