package cards

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const (
	testCards = `[
	  {"unique_id": "u1", "name": "Ember Hex", "pitch": "1", "types": ["Wizard", "Action"],
	   "printings": [
	     {"unique_id": "p1", "id": "WTR001", "set_id": "WTR", "edition": "A", "foiling": "S", "tcgplayer_product_id": "12345"},
	     {"unique_id": "p2", "id": "WTR001-F", "set_id": "WTR", "edition": "A", "foiling": "R"}
	   ]},
	  {"unique_id": "u2", "name": "Snatch", "pitch": "1",
	   "printings": [{"unique_id": "p3", "id": "WTR167", "set_id": "WTR"}]},
	  {"unique_id": "u3", "name": "Ember of the Hex", "printings": []}
	]`
	testSets     = `[{"unique_id": "s1", "id": "WTR", "name": "Welcome to Rathe", "printings": [{"edition": "A"}]}]`
	testKeywords = `[{"unique_id": "k1", "name": "Go again", "description": "Gain 1 action point."}]`
)

// memSource serves documents from memory and counts opens.
type memSource struct {
	mu    sync.Mutex
	docs  map[string]string
	opens atomic.Int32
	delay time.Duration
}

func newMemSource() *memSource {
	return &memSource{docs: map[string]string{
		CardsDocument:    testCards,
		SetsDocument:     testSets,
		KeywordsDocument: testKeywords,
	}}
}

func (m *memSource) set(name, body string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if body == "" {
		delete(m.docs, name)
		return
	}
	m.docs[name] = body
}

func (m *memSource) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	m.opens.Add(1)
	if m.delay > 0 {
		time.Sleep(m.delay)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	body, ok := m.docs[name]
	if !ok {
		return nil, fmt.Errorf("failed to open %s: not found", name)
	}
	return io.NopCloser(strings.NewReader(body)), nil
}

func (m *memSource) Describe() string { return "memory" }

func loadedIndex(t *testing.T) (*Index, *memSource) {
	t.Helper()
	src := newMemSource()
	idx := NewIndex(src, zap.NewNop(), 8)
	require.NoError(t, idx.Load(context.Background()))
	return idx, src
}

func TestIndex_NotLoaded(t *testing.T) {
	idx := NewIndex(newMemSource(), nil, 0)

	assert.False(t, idx.IsLoaded())

	_, _, err := idx.GetByPrintingID("WTR001")
	assert.ErrorIs(t, err, ErrNotLoaded)
	_, _, err = idx.GetByUniqueID("u1")
	assert.ErrorIs(t, err, ErrNotLoaded)
	_, _, err = idx.GetByName("Ember Hex")
	assert.ErrorIs(t, err, ErrNotLoaded)
	_, _, err = idx.Lookup("WTR001")
	assert.ErrorIs(t, err, ErrNotLoaded)
	_, err = idx.Search("ember", 1, 20)
	assert.ErrorIs(t, err, ErrNotLoaded)
	_, err = idx.Sets()
	assert.ErrorIs(t, err, ErrNotLoaded)

	st := idx.Stats()
	assert.False(t, st.Loaded)
	assert.Nil(t, st.LastUpdated)
}

func TestIndex_EmberHex(t *testing.T) {
	idx, _ := loadedIndex(t)

	a, ok, err := idx.GetByPrintingID("WTR001")
	require.NoError(t, err)
	require.True(t, ok)
	b, ok, err := idx.GetByPrintingID("WTR001-F")
	require.NoError(t, err)
	require.True(t, ok)

	assert.Same(t, a, b)
	assert.Equal(t, "u1", a.UniqueID)

	res, err := idx.Search("ember", 1, 20)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Total)
	assert.Equal(t, "u1", res.Data[0].UniqueID)

	res, err = idx.Search("ember hex", 1, 20)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Total)
	assert.Same(t, a, res.Data[0])
}

func TestIndex_EveryPrintingResolvesToOwner(t *testing.T) {
	idx, _ := loadedIndex(t)
	snap, err := idx.published()
	require.NoError(t, err)

	for _, card := range snap.cards {
		for _, p := range card.Printings {
			got, ok, err := idx.GetByPrintingID(p.ID)
			require.NoError(t, err)
			require.True(t, ok, p.ID)
			assert.Same(t, card, got, p.ID)
		}
	}
	assert.Equal(t, 3, idx.Stats().Printings)
}

func TestIndex_Lookups(t *testing.T) {
	idx, _ := loadedIndex(t)

	t.Run("NameIgnoresCase", func(t *testing.T) {
		a, ok, err := idx.GetByName("Ember Hex")
		require.NoError(t, err)
		require.True(t, ok)
		b, _, _ := idx.GetByName("  ember HEX ")
		assert.Same(t, a, b)
	})

	t.Run("PrintingIgnoresCase", func(t *testing.T) {
		card, ok, err := idx.GetByPrintingID("wtr167")
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, "Snatch", card.Name)
	})

	t.Run("MissIsNotAnError", func(t *testing.T) {
		card, ok, err := idx.GetByUniqueID("nope")
		assert.NoError(t, err)
		assert.False(t, ok)
		assert.Nil(t, card)
	})

	t.Run("LookupOrder", func(t *testing.T) {
		card, ok, err := idx.Lookup("WTR001-F")
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, "u1", card.UniqueID)

		card, ok, _ = idx.Lookup("u2")
		require.True(t, ok)
		assert.Equal(t, "Snatch", card.Name)

		card, ok, _ = idx.Lookup("ember of the hex")
		require.True(t, ok)
		assert.Equal(t, "u3", card.UniqueID)

		_, ok, err = idx.Lookup("XYZ999")
		assert.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestIndex_ReferenceLists(t *testing.T) {
	idx, _ := loadedIndex(t)

	sets, err := idx.Sets()
	require.NoError(t, err)
	require.Len(t, sets, 1)
	assert.Equal(t, "A", sets[0].Edition)

	sets[0].Name = "mutated"
	again, _ := idx.Sets()
	assert.Equal(t, "Welcome to Rathe", again[0].Name)

	keywords, err := idx.Keywords()
	require.NoError(t, err)
	require.Len(t, keywords, 1)
	assert.Equal(t, "Go again", keywords[0].Name)

	st := idx.Stats()
	assert.True(t, st.Loaded)
	assert.Equal(t, 3, st.Cards)
	assert.Equal(t, 1, st.Sets)
	assert.Equal(t, 1, st.Keywords)
	assert.Equal(t, "memory", st.Source)
	assert.NotNil(t, st.LastUpdated)
}

func TestIndex_NameCollisionLastWins(t *testing.T) {
	src := newMemSource()
	src.set(CardsDocument, `[
	  {"unique_id": "a", "name": "Sink Below", "printings": []},
	  {"unique_id": "b", "name": "sink below", "printings": []}
	]`)
	idx := NewIndex(src, nil, 0)
	require.NoError(t, idx.Load(context.Background()))

	card, ok, err := idx.GetByName("Sink Below")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "b", card.UniqueID)
}

func TestIndex_LoadFailures(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		body    string
		wantErr string
	}{
		{"MissingCards", CardsDocument, "", "cards.json"},
		{"MissingSets", SetsDocument, "", "sets.json"},
		{"MissingKeywords", KeywordsDocument, "", "keywords.json"},
		{"MalformedCards", CardsDocument, `[{"unique_id": `, "failed to parse cards.json"},
		{"EmptyCards", CardsDocument, `[]`, "contains no cards"},
		{"NullCard", CardsDocument, `[null]`, "is null"},
		{"CardWithoutName", CardsDocument, `[{"unique_id": "x"}]`, "missing name"},
		{"TrailingData", CardsDocument, testCards + ` }{ not json`, "trailing data"},
		{"TrailingValue", KeywordsDocument, `[] []`, "failed to parse keywords.json"},
		{"DuplicateUniqueID", CardsDocument, `[{"unique_id": "u1", "name": "Ember Hex"}, {"unique_id": "u1", "name": "Snatch"}]`, "duplicate unique_id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := newMemSource()
			src.set(tt.doc, tt.body)
			idx := NewIndex(src, nil, 0)

			err := idx.Load(context.Background())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.False(t, idx.IsLoaded())
		})
	}
}

func TestIndex_FailedReloadKeepsSnapshot(t *testing.T) {
	idx, src := loadedIndex(t)
	before := idx.Stats().LastUpdated

	src.set(CardsDocument, `not json`)
	err := idx.Reload(context.Background())
	require.Error(t, err)

	card, ok, err := idx.GetByPrintingID("WTR001")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Ember Hex", card.Name)
	assert.Equal(t, before, idx.Stats().LastUpdated)
}

func TestIndex_ReloadReplacesSnapshot(t *testing.T) {
	idx, src := loadedIndex(t)

	src.set(CardsDocument, `[{"unique_id": "u9", "name": "Command and Conquer", "printings": [{"id": "ARC159"}]}]`)
	require.NoError(t, idx.Reload(context.Background()))

	_, ok, err := idx.GetByPrintingID("WTR001")
	require.NoError(t, err)
	assert.False(t, ok)

	card, ok, _ := idx.GetByPrintingID("ARC159")
	require.True(t, ok)
	assert.Equal(t, "u9", card.UniqueID)

	res, err := idx.Search("ember", 1, 20)
	require.NoError(t, err)
	assert.Zero(t, res.Total)
}

func TestIndex_ConcurrentLoadsShareOneRead(t *testing.T) {
	src := newMemSource()
	src.delay = 20 * time.Millisecond
	idx := NewIndex(src, nil, 0)

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for n := 0; n < 8; n++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- idx.Load(context.Background())
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}
	// Three documents per load. Stragglers may start a second load after the first finishes.
	assert.LessOrEqual(t, src.opens.Load(), int32(6))
	assert.True(t, idx.IsLoaded())
}

func TestIndex_ReadersDuringReload(t *testing.T) {
	idx, src := loadedIndex(t)
	src.delay = 5 * time.Millisecond

	done := make(chan struct{})
	go func() {
		defer close(done)
		for n := 0; n < 5; n++ {
			_ = idx.Reload(context.Background())
		}
	}()

	for {
		select {
		case <-done:
			return
		default:
			card, ok, err := idx.GetByPrintingID("WTR001")
			if !assert.NoError(t, err) || !assert.True(t, ok) {
				return
			}
			assert.Equal(t, "u1", card.UniqueID)
		}
	}
}

func TestIndex_StartReloadJob(t *testing.T) {
	idx, src := loadedIndex(t)
	src.set(CardsDocument, `[{"unique_id": "u9", "name": "Command and Conquer", "printings": [{"id": "ARC159"}]}]`)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	idx.StartReloadJob(ctx, 10*time.Millisecond)

	assert.Eventually(t, func() bool {
		_, ok, _ := idx.GetByPrintingID("ARC159")
		return ok
	}, time.Second, 10*time.Millisecond)
}

func TestIndex_ErrNotLoadedIsSentinel(t *testing.T) {
	wrapped := fmt.Errorf("lookup: %w", ErrNotLoaded)
	assert.True(t, errors.Is(wrapped, ErrNotLoaded))
}
