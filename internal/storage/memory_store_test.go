package storage

import (
	"errors"
	"math"
	"reflect"
	"sync"
	"testing"

	"games-api/internal/model"
)

func newSeededStore() *MemoryStore {
	return NewMemoryStore(DefaultSeed())
}

func TestNewMemoryStore_CopiesSeed(t *testing.T) {
	seed := DefaultSeed()
	store := NewMemoryStore(seed)

	seed[0].Title = "Changed"
	if got, _ := store.Get(0); got.Title == "Changed" {
		t.Errorf("NewMemoryStore() aliases the seed slice")
	}
	if store.Len() != 7 {
		t.Errorf("Len() = %d, want 7", store.Len())
	}
}

func TestList_ReturnsCopyInOrder(t *testing.T) {
	store := newSeededStore()

	list := store.List()
	if !reflect.DeepEqual(list, DefaultSeed()) {
		t.Fatalf("List() does not match seed order.\nGot:  %+v\nWant: %+v", list, DefaultSeed())
	}

	list[0].Title = "Mutated"
	if got, _ := store.Get(0); got.Title == "Mutated" {
		t.Errorf("List() returned a slice aliasing store state")
	}
}

func TestGet_MatchesList(t *testing.T) {
	store := newSeededStore()
	list := store.List()

	for i := range list {
		got, err := store.Get(i)
		if err != nil {
			t.Fatalf("Get(%d) returned error: %v", i, err)
		}
		if got != list[i] {
			t.Errorf("Get(%d) = %+v, want %+v", i, got, list[i])
		}
	}
}

func TestGet_OutOfRange(t *testing.T) {
	store := newSeededStore()

	for _, idx := range []int{-1, 7, 99} {
		_, err := store.Get(idx)
		if !errors.Is(err, ErrIndexOutOfRange) {
			t.Errorf("Get(%d) error = %v, want ErrIndexOutOfRange", idx, err)
		}
		var ierr *IndexError
		if !errors.As(err, &ierr) {
			t.Fatalf("Get(%d) error is not *IndexError", idx)
		}
		if ierr.Len != 7 || ierr.Index != idx {
			t.Errorf("IndexError = %+v, want Index %d Len 7", ierr, idx)
		}
	}
}

func TestGet_UsesCurrentLength(t *testing.T) {
	store := newSeededStore()
	if _, err := store.Get(6); err != nil {
		t.Fatalf("Get(6) on full store returned error: %v", err)
	}
	if _, err := store.Delete(0); err != nil {
		t.Fatalf("Delete(0) returned error: %v", err)
	}
	if _, err := store.Get(6); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("Get(6) after delete error = %v, want ErrIndexOutOfRange", err)
	}
}

func TestFilter(t *testing.T) {
	store := newSeededStore()

	tests := []struct {
		pattern string
		want    []string
	}{
		{"action", []string{"The Legend of Zelda: Ocarina of Time", "God of War", "The Last of Us Part II", "Elden Ring"}},
		{"RPG", []string{"Elden Ring", "Baldur's Gate 3"}},
		{"fps", []string{"Half-Life 2"}},
		{"zz-no-match", []string{}},
	}

	for _, tt := range tests {
		games, err := store.Filter(tt.pattern)
		if err != nil {
			t.Fatalf("Filter(%q) returned error: %v", tt.pattern, err)
		}
		if games == nil {
			t.Fatalf("Filter(%q) returned nil, want empty slice", tt.pattern)
		}
		titles := make([]string, 0, len(games))
		for _, g := range games {
			titles = append(titles, g.Title)
		}
		if !reflect.DeepEqual(titles, tt.want) {
			t.Errorf("Filter(%q) titles = %q, want %q", tt.pattern, titles, tt.want)
		}
	}
}

func TestFilter_BlankPattern(t *testing.T) {
	store := newSeededStore()

	for _, p := range []string{"", "   ", "\t"} {
		if _, err := store.Filter(p); !errors.Is(err, ErrInvalidQuery) {
			t.Errorf("Filter(%q) error = %v, want ErrInvalidQuery", p, err)
		}
	}
}

func TestAppend(t *testing.T) {
	store := newSeededStore()
	g := model.Game{Title: "X", Genre: "Y", Platform: "Z", Year: 2024, Developer: "W"}

	got, idx := store.Append(g)
	if got != g {
		t.Errorf("Append() returned %+v, want %+v", got, g)
	}
	if idx != 7 || store.Len() != 8 {
		t.Errorf("Append() index = %d len = %d, want 7 and 8", idx, store.Len())
	}
	if last, _ := store.Get(idx); last != g {
		t.Errorf("Get(%d) after Append = %+v, want %+v", idx, last, g)
	}
}

func TestAppend_AllowsDuplicates(t *testing.T) {
	store := NewMemoryStore(nil)
	g := model.Game{Title: "X", Genre: "Y", Platform: "Z", Year: 2024, Developer: "W"}

	_, first := store.Append(g)
	_, second := store.Append(g)
	if first != 0 || second != 1 {
		t.Errorf("Append() indices = %d, %d, want 0, 1", first, second)
	}
}

func TestReplace(t *testing.T) {
	store := newSeededStore()
	before := store.List()
	g := model.Game{Title: "X", Genre: "Y", Platform: "Z", Year: 2024, Developer: "W"}

	if _, err := store.Replace(3, g); err != nil {
		t.Fatalf("Replace(3) returned error: %v", err)
	}

	after := store.List()
	if len(after) != len(before) {
		t.Fatalf("Replace() changed length from %d to %d", len(before), len(after))
	}
	for i := range after {
		want := before[i]
		if i == 3 {
			want = g
		}
		if after[i] != want {
			t.Errorf("index %d after Replace = %+v, want %+v", i, after[i], want)
		}
	}

	if _, err := store.Replace(99, g); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("Replace(99) error = %v, want ErrIndexOutOfRange", err)
	}
}

func TestDelete_ShiftsLaterRecords(t *testing.T) {
	store := newSeededStore()
	before := store.List()

	removed, err := store.Delete(2)
	if err != nil {
		t.Fatalf("Delete(2) returned error: %v", err)
	}
	if removed != before[2] {
		t.Errorf("Delete(2) removed %+v, want %+v", removed, before[2])
	}

	after := store.List()
	if len(after) != len(before)-1 {
		t.Fatalf("Delete() length = %d, want %d", len(after), len(before)-1)
	}
	want := append(append([]model.Game{}, before[:2]...), before[3:]...)
	if !reflect.DeepEqual(after, want) {
		t.Errorf("List() after Delete mismatch.\nGot:  %+v\nWant: %+v", after, want)
	}

	if _, err := store.Delete(-1); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("Delete(-1) error = %v, want ErrIndexOutOfRange", err)
	}
}

func TestDelete_EmptyStore(t *testing.T) {
	store := NewMemoryStore(nil)

	_, err := store.Delete(0)
	var ierr *IndexError
	if !errors.As(err, &ierr) {
		t.Fatalf("Delete(0) on empty store error = %v, want *IndexError", err)
	}
	if ierr.Len != 0 {
		t.Errorf("IndexError.Len = %d, want 0", ierr.Len)
	}
}

func TestConcurrentAppendKeepsIndicesContiguous(t *testing.T) {
	store := NewMemoryStore(nil)
	const n = 100

	var wg sync.WaitGroup
	seen := make([]bool, n)
	var mu sync.Mutex
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, idx := store.Append(model.Game{Title: "T", Genre: "G", Platform: "P", Year: 2000, Developer: "D"})
			mu.Lock()
			seen[idx] = true
			mu.Unlock()
		}()
	}
	wg.Wait()

	if store.Len() != n {
		t.Fatalf("Len() = %d, want %d", store.Len(), n)
	}
	for i, ok := range seen {
		if !ok {
			t.Errorf("index %d was never assigned", i)
		}
	}
}

func TestParseIndex(t *testing.T) {
	tests := []struct {
		raw     string
		want    int
		wantErr bool
	}{
		{"0", 0, false},
		{"6", 6, false},
		{"-1", -1, false},
		{"1.0", 1, false},
		{"1e0", 1, false},
		{"+1", 1, false},
		{"01", 1, false},
		{" 2 ", 2, false},
		{"3000000000", math.MaxInt32, false},
		{"-3000000000", math.MinInt32, false},
		{"abc", 0, true},
		{"1.5", 0, true},
		{"NaN", 0, true},
		{"Inf", 0, true},
		{"-Infinity", 0, true},
		{"", 0, true},
		{"filter", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseIndex(tt.raw)
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidIndex) {
				t.Errorf("ParseIndex(%q) error = %v, want ErrInvalidIndex", tt.raw, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("ParseIndex(%q) = %d, %v, want %d", tt.raw, got, err, tt.want)
		}
	}
}
