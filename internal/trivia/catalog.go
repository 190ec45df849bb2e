// Package trivia holds the static question catalog the game draws from.
package trivia

import (
	"crypto/rand"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"os"
	"path/filepath"
	"strings"

	"github.com/samber/lo"
	"gopkg.in/yaml.v3"

	"upsidedown/internal/logging"
)

// DefaultPickAttempts bounds how often PickDifferentFrom resamples.
const DefaultPickAttempts = 12

// ErrCatalogEmpty is returned when a selection is requested from an empty catalog.
var ErrCatalogEmpty = errors.New("no questions available")

//go:embed trivia.json
var defaultData []byte

// Item is one prompt/answer pair.
type Item struct {
	ID     int    `json:"id" yaml:"id"`
	Prompt string `json:"question" yaml:"question"`
	Answer string `json:"answer" yaml:"answer"`
}

// List is the on-disk shape of a catalog file.
type List struct {
	Questions []Item `json:"questions" yaml:"questions"`
}

// Catalog is an immutable list of items with random selection.
type Catalog struct {
	items []Item
	byID  map[int]Item
	intn  func(n int) (int, error)
}

// New builds a catalog from items. Ids must be unique and answers non-blank.
// An empty list is accepted; selecting from it returns ErrCatalogEmpty.
func New(items []Item) (*Catalog, error) {
	byID := make(map[int]Item, len(items))
	for _, it := range items {
		if _, dup := byID[it.ID]; dup {
			return nil, fmt.Errorf("duplicate question id %d", it.ID)
		}
		if strings.TrimSpace(it.Answer) == "" {
			return nil, fmt.Errorf("question %d has a blank answer", it.ID)
		}
		byID[it.ID] = it
	}
	return &Catalog{
		items: append([]Item(nil), items...),
		byID:  byID,
		intn:  cryptoIntn,
	}, nil
}

// Default returns the embedded question set.
func Default() *Catalog {
	var list List
	if err := json.Unmarshal(defaultData, &list); err != nil {
		panic(fmt.Sprintf("trivia: embedded catalog is invalid: %v", err))
	}
	c, err := New(list.Questions)
	if err != nil {
		panic(fmt.Sprintf("trivia: embedded catalog is invalid: %v", err))
	}
	return c
}

// LoadFile reads a catalog from a .json, .yaml or .yml file.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog file: %w", err)
	}
	var list List
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &list)
	default:
		err = json.Unmarshal(data, &list)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing catalog file: %w", err)
	}
	skipped := 0
	list.Questions = lo.Filter(list.Questions, func(it Item, _ int) bool {
		if strings.TrimSpace(it.Answer) == "" {
			skipped++
			return false
		}
		return true
	})
	if skipped > 0 {
		logging.Warn("Skipped %d questions with blank answers in %s", skipped, path)
	}
	return New(list.Questions)
}

// WithRand returns a copy of c that draws indexes from intn.
func (c *Catalog) WithRand(intn func(n int) (int, error)) *Catalog {
	cp := *c
	cp.intn = intn
	return &cp
}

// Len returns the number of items.
func (c *Catalog) Len() int { return len(c.items) }

// Items returns a copy of the items in catalog order.
func (c *Catalog) Items() []Item { return append([]Item(nil), c.items...) }

// PickRandom returns a uniformly chosen item.
func (c *Catalog) PickRandom() (Item, error) {
	if len(c.items) == 0 {
		return Item{}, ErrCatalogEmpty
	}
	n, err := c.intn(len(c.items))
	if err != nil || n < 0 || n >= len(c.items) {
		logging.Warn("Error generating random question index: %v, using fallback", err)
		return c.items[0], nil
	}
	return c.items[n], nil
}

// FindByID looks up an item by its id.
func (c *Catalog) FindByID(id int) (Item, bool) {
	it, ok := c.byID[id]
	return it, ok
}

// PickDifferentFrom samples up to maxAttempts times looking for an item whose
// id is not excludeID. When every sample collides the last one is returned.
func (c *Catalog) PickDifferentFrom(excludeID, maxAttempts int) (Item, error) {
	var next Item
	for i := 0; i < max(maxAttempts, 1); i++ {
		var err error
		if next, err = c.PickRandom(); err != nil {
			return Item{}, err
		}
		if next.ID != excludeID {
			break
		}
	}
	return next, nil
}

func cryptoIntn(n int) (int, error) {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0, err
	}
	return int(v.Int64()), nil
}
