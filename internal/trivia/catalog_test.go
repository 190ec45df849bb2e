package trivia

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func testCatalog(t *testing.T, items ...Item) *Catalog {
	t.Helper()
	c, err := New(items)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c
}

// sequence returns an intn that yields the given indexes in order, repeating the last.
func sequence(idx ...int) func(int) (int, error) {
	i := 0
	return func(int) (int, error) {
		v := idx[min(i, len(idx)-1)]
		i++
		return v, nil
	}
}

func TestDefaultCatalog(t *testing.T) {
	c := Default()
	if c.Len() != 30 {
		t.Fatalf("Default().Len() = %d, want 30", c.Len())
	}
	it, ok := c.FindByID(3)
	if !ok || it.Answer != "Hawkins Tigers" {
		t.Errorf("FindByID(3) = %+v, %v", it, ok)
	}
	for _, it := range c.Items() {
		if it.Prompt == "" {
			t.Errorf("question %d has an empty prompt", it.ID)
		}
	}
}

func TestNewRejectsDuplicatesAndBlankAnswers(t *testing.T) {
	if _, err := New([]Item{{ID: 1, Answer: "a"}, {ID: 1, Answer: "b"}}); err == nil {
		t.Error("expected duplicate id error")
	}
	if _, err := New([]Item{{ID: 1, Answer: "  "}}); err == nil {
		t.Error("expected blank answer error")
	}
}

func TestPickRandomEmpty(t *testing.T) {
	c := testCatalog(t)
	if _, err := c.PickRandom(); !errors.Is(err, ErrCatalogEmpty) {
		t.Errorf("PickRandom on empty catalog: got %v, want ErrCatalogEmpty", err)
	}
	if _, err := c.PickDifferentFrom(1, DefaultPickAttempts); !errors.Is(err, ErrCatalogEmpty) {
		t.Errorf("PickDifferentFrom on empty catalog: got %v, want ErrCatalogEmpty", err)
	}
}

func TestPickRandomReturnsCatalogItems(t *testing.T) {
	c := testCatalog(t, Item{ID: 1, Answer: "Gate"}, Item{ID: 2, Answer: "Papa"})
	for i := 0; i < 50; i++ {
		it, err := c.PickRandom()
		if err != nil {
			t.Fatalf("PickRandom: %v", err)
		}
		if it.ID != 1 && it.ID != 2 {
			t.Fatalf("unexpected item %+v", it)
		}
	}
}

func TestPickRandomFallbackOnRandError(t *testing.T) {
	c := testCatalog(t, Item{ID: 5, Answer: "Gate"}, Item{ID: 6, Answer: "Papa"}).
		WithRand(func(int) (int, error) { return 0, errors.New("entropy gone") })
	it, err := c.PickRandom()
	if err != nil || it.ID != 5 {
		t.Errorf("PickRandom = %+v, %v; want first item", it, err)
	}
}

func TestFindByIDMissing(t *testing.T) {
	c := testCatalog(t, Item{ID: 1, Answer: "Gate"})
	if _, ok := c.FindByID(99); ok {
		t.Error("FindByID(99) should be absent")
	}
}

func TestPickDifferentFrom(t *testing.T) {
	items := []Item{{ID: 1, Answer: "Gate"}, {ID: 2, Answer: "Papa"}, {ID: 3, Answer: "Robin"}}

	c := testCatalog(t, items...).WithRand(sequence(0, 0, 0, 2))
	it, err := c.PickDifferentFrom(1, DefaultPickAttempts)
	if err != nil || it.ID != 3 {
		t.Errorf("PickDifferentFrom = %+v, %v; want id 3", it, err)
	}

	// Every sample collides: the last sample is returned anyway.
	calls := 0
	c = testCatalog(t, items...).WithRand(func(int) (int, error) {
		calls++
		return 0, nil
	})
	it, err = c.PickDifferentFrom(1, 4)
	if err != nil || it.ID != 1 {
		t.Errorf("PickDifferentFrom with collisions = %+v, %v; want id 1", it, err)
	}
	if calls != 4 {
		t.Errorf("sampled %d times, want 4", calls)
	}

	single := testCatalog(t, Item{ID: 7, Answer: "Eight"})
	if it, _ := single.PickDifferentFrom(7, DefaultPickAttempts); it.ID != 7 {
		t.Errorf("single item catalog returned %+v", it)
	}
}

func TestPickDifferentFromMismatchRate(t *testing.T) {
	c := Default()
	collisions := 0
	for i := 0; i < 500; i++ {
		it, err := c.PickDifferentFrom(4, DefaultPickAttempts)
		if err != nil {
			t.Fatalf("PickDifferentFrom: %v", err)
		}
		if it.ID == 4 {
			collisions++
		}
	}
	if collisions > 0 {
		t.Errorf("got %d collisions in 500 draws", collisions)
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()

	jsonPath := filepath.Join(dir, "q.json")
	if err := os.WriteFile(jsonPath, []byte(`{"questions":[{"id":1,"question":"Q?","answer":"Gate"},{"id":2,"question":"Blank?","answer":""}]}`), 0o644); err != nil {
		t.Fatal(err)
	}
	c, err := LoadFile(jsonPath)
	if err != nil {
		t.Fatalf("LoadFile json: %v", err)
	}
	if c.Len() != 1 {
		t.Errorf("json catalog Len = %d, want 1 (blank answer skipped)", c.Len())
	}

	yamlPath := filepath.Join(dir, "q.yaml")
	yamlData := "questions:\n  - id: 10\n    question: What food does Eleven love?\n    answer: Eggo waffles\n"
	if err := os.WriteFile(yamlPath, []byte(yamlData), 0o644); err != nil {
		t.Fatal(err)
	}
	c, err = LoadFile(yamlPath)
	if err != nil {
		t.Fatalf("LoadFile yaml: %v", err)
	}
	if it, ok := c.FindByID(10); !ok || it.Answer != "Eggo waffles" {
		t.Errorf("yaml item = %+v, %v", it, ok)
	}

	if _, err := LoadFile(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}
	badPath := filepath.Join(dir, "bad.json")
	_ = os.WriteFile(badPath, []byte("{"), 0o644)
	if _, err := LoadFile(badPath); err == nil {
		t.Error("expected parse error")
	}
}
