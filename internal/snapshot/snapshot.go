// Package snapshot persists a versioned, time-stamped copy of the game so a
// reload can resume it. Persistence is best effort: storage failures are
// logged and swallowed, malformed or expired records read as absent.
package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"strings"
	"time"

	"github.com/samber/lo"

	"upsidedown/internal/game"
	"upsidedown/internal/logging"
)

const (
	// Version is the schema version written to every record. Records with
	// any other version are ignored, never migrated.
	Version = 2
	// DefaultTTL is how long a record stays valid after it was saved.
	DefaultTTL = 6 * time.Hour
	// DefaultKey names the record in its store.
	DefaultKey = "upside-down-game.v2"
)

// ErrNotFound is returned by a Storage when the key is absent.
var ErrNotFound = errors.New("snapshot: not found")

// Storage is a small key-value capability.
type Storage interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

// Sweeper is implemented by server-side stores that can drop stale records
// in bulk.
type Sweeper interface {
	Sweep(ctx context.Context, maxAge time.Duration) (int, error)
}

// Snapshot is the stored record.
type Snapshot struct {
	V              int      `json:"v"`
	QuestionID     int      `json:"questionId"`
	GuessedLetters []string `json:"guessedLetters"`
	SavedAt        int64    `json:"savedAt"`
}

// Seed converts the snapshot into a game seed.
func (s Snapshot) Seed() *game.Seed {
	return &game.Seed{QuestionID: s.QuestionID, Letters: s.GuessedLetters}
}

// Adapter reads and writes one snapshot record.
type Adapter struct {
	store Storage
	key   string
	ttl   time.Duration
	now   func() time.Time
}

// Option configures an Adapter.
type Option func(*Adapter)

// WithTTL overrides DefaultTTL.
func WithTTL(ttl time.Duration) Option {
	return func(a *Adapter) {
		if ttl > 0 {
			a.ttl = ttl
		}
	}
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(a *Adapter) { a.now = now }
}

// NewAdapter returns an adapter for key in store. An empty key means DefaultKey.
func NewAdapter(store Storage, key string, opts ...Option) *Adapter {
	if key == "" {
		key = DefaultKey
	}
	a := &Adapter{store: store, key: key, ttl: DefaultTTL, now: time.Now}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Save writes st. Failures are logged and ignored.
func (a *Adapter) Save(ctx context.Context, st game.State) {
	rec := Snapshot{
		V:              Version,
		QuestionID:     st.Item.ID,
		GuessedLetters: st.Guessed.Slice(),
		SavedAt:        a.now().UnixMilli(),
	}
	data, err := json.Marshal(rec)
	if err != nil {
		logging.WarnCtx(ctx, "Failed to marshal snapshot %s: %v", a.key, err)
		return
	}
	if err := a.store.Set(ctx, a.key, string(data)); err != nil {
		logging.WarnCtx(ctx, "Failed to save snapshot %s: %v", a.key, err)
	}
}

// Clear removes the record. Failures are logged and ignored.
func (a *Adapter) Clear(ctx context.Context) {
	if err := a.store.Remove(ctx, a.key); err != nil && !errors.Is(err, ErrNotFound) {
		logging.WarnCtx(ctx, "Failed to clear snapshot %s: %v", a.key, err)
	}
}

// Load returns the stored snapshot if it is present, well formed and not
// expired. An expired record is removed.
func (a *Adapter) Load(ctx context.Context) (Snapshot, bool) {
	raw, err := a.store.Get(ctx, a.key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			logging.WarnCtx(ctx, "Failed to read snapshot %s: %v", a.key, err)
		}
		return Snapshot{}, false
	}
	snap, reason := decode(raw)
	if reason != "" {
		logging.InfoCtx(ctx, "Ignoring snapshot %s: %s", a.key, reason)
		return Snapshot{}, false
	}
	if a.now().UnixMilli()-snap.SavedAt > a.ttl.Milliseconds() {
		logging.InfoCtx(ctx, "Snapshot %s expired (saved at %d), clearing", a.key, snap.SavedAt)
		a.Clear(ctx)
		return Snapshot{}, false
	}
	return snap, true
}

// decode validates raw and returns a sanitized snapshot, or a reason it was
// rejected.
func decode(raw string) (Snapshot, string) {
	var obj map[string]any
	if err := json.Unmarshal([]byte(raw), &obj); err != nil {
		return Snapshot{}, "parse error: " + err.Error()
	}
	if obj == nil {
		return Snapshot{}, "not an object"
	}
	if v, ok := obj["v"].(float64); !ok || v != Version {
		return Snapshot{}, "version mismatch"
	}
	qid, ok := obj["questionId"].(float64)
	if !ok || !isFinite(qid) || qid != math.Trunc(qid) || math.Abs(qid) > math.MaxInt32 {
		return Snapshot{}, "invalid questionId"
	}
	entries, ok := obj["guessedLetters"].([]any)
	if !ok {
		return Snapshot{}, "guessedLetters is not an array"
	}
	savedAt, ok := obj["savedAt"].(float64)
	if !ok || !isFinite(savedAt) {
		return Snapshot{}, "invalid savedAt"
	}
	letters := lo.FilterMap(entries, func(e any, _ int) (string, bool) {
		s, ok := e.(string)
		if !ok {
			return "", false
		}
		s = strings.ToLower(s)
		return s, len(s) == 1 && s[0] >= 'a' && s[0] <= 'z'
	})
	return Snapshot{
		V:              Version,
		QuestionID:     int(qid),
		GuessedLetters: lo.Uniq(letters),
		SavedAt:        int64(savedAt),
	}, ""
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
