// Package vectorindex is the in-memory exact similarity index shared by the
// partition stores.
//
// Entries live in insertion-ordered slots. A roaring bitmap per category
// records which slots carry that category, so a filtered search only scores
// matching entries. The index is not safe for concurrent use; partitions
// guard it with their own lock.
package vectorindex

import (
	"errors"
	"math"
	"sort"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/custodia-labs/lexdraft/internal/core/domain"
)

// ErrDimensionMismatch indicates vectors of different lengths were compared.
var ErrDimensionMismatch = errors.New("vector dimensions do not match")

// Index holds entries and their category bitmaps.
type Index struct {
	entries    []domain.StoreEntry
	norms      []float64
	slots      map[string]uint32
	all        *roaring.Bitmap
	categories map[string]*roaring.Bitmap
}

// New creates an empty index.
func New() *Index {
	return &Index{
		slots:      make(map[string]uint32),
		all:        roaring.New(),
		categories: make(map[string]*roaring.Bitmap),
	}
}

// Len returns the number of entries.
func (ix *Index) Len() int {
	return len(ix.entries)
}

// Put inserts or replaces the entry with e.ID. A replaced entry keeps its
// slot, so insertion order reflects first ingestion.
func (ix *Index) Put(e domain.StoreEntry) {
	if slot, ok := ix.slots[e.ID]; ok {
		prev := ix.entries[slot]
		if prev.Category != e.Category {
			ix.bitmap(prev.Category).Remove(slot)
			ix.bitmap(e.Category).Add(slot)
		}
		ix.entries[slot] = e
		ix.norms[slot] = Magnitude(e.Embedding)
		return
	}

	slot := uint32(len(ix.entries))
	ix.slots[e.ID] = slot
	ix.entries = append(ix.entries, e)
	ix.norms = append(ix.norms, Magnitude(e.Embedding))
	ix.all.Add(slot)
	ix.bitmap(e.Category).Add(slot)
}

// Get returns the entry with id.
func (ix *Index) Get(id string) (domain.StoreEntry, bool) {
	slot, ok := ix.slots[id]
	if !ok {
		return domain.StoreEntry{}, false
	}
	return ix.entries[slot], true
}

// Entries returns a copy of every entry in slot order.
func (ix *Index) Entries() []domain.StoreEntry {
	return append([]domain.StoreEntry(nil), ix.entries...)
}

// Stale returns the IDs of indexed entries that share a source with entries
// but whose ID is not among them, in slot order.
func (ix *Index) Stale(entries []domain.StoreEntry) []string {
	sources := make(map[string]bool, 1)
	keep := make(map[string]bool, len(entries))
	for _, e := range entries {
		sources[e.Source] = true
		keep[e.ID] = true
	}
	var stale []string
	for _, e := range ix.entries {
		if sources[e.Source] && !keep[e.ID] {
			stale = append(stale, e.ID)
		}
	}
	return stale
}

// Remove deletes the entries with the given IDs and returns how many were
// present. Surviving entries keep their relative order.
func (ix *Index) Remove(ids ...string) int {
	drop := make(map[uint32]bool, len(ids))
	for _, id := range ids {
		if slot, ok := ix.slots[id]; ok {
			drop[slot] = true
		}
	}
	if len(drop) == 0 {
		return 0
	}
	kept := ix.entries
	*ix = *New()
	for slot, e := range kept {
		if !drop[uint32(slot)] {
			ix.Put(e)
		}
	}
	return len(drop)
}

// Reset removes every entry.
func (ix *Index) Reset() {
	*ix = *New()
}

func (ix *Index) bitmap(category string) *roaring.Bitmap {
	bm, ok := ix.categories[category]
	if !ok {
		bm = roaring.New()
		ix.categories[category] = bm
	}
	return bm
}

// Search scores candidate entries by cosine similarity and returns the k
// best, most similar first. Equal scores keep slot order. A non-empty
// category restricts candidates to that exact category. Entries whose
// dimension differs from the query are skipped.
func (ix *Index) Search(query []float32, k int, category string) []domain.SearchHit {
	if k <= 0 || len(ix.entries) == 0 {
		return []domain.SearchHit{}
	}

	candidates := ix.all
	if category != "" {
		bm, ok := ix.categories[category]
		if !ok {
			return []domain.SearchHit{}
		}
		candidates = bm
	}

	qnorm := Magnitude(query)
	type scored struct {
		slot  uint32
		score float64
	}
	results := make([]scored, 0, candidates.GetCardinality())

	it := candidates.Iterator()
	for it.HasNext() {
		slot := it.Next()
		e := ix.entries[slot]
		if len(e.Embedding) != len(query) {
			continue
		}
		results = append(results, scored{slot: slot, score: cosine(query, e.Embedding, qnorm, ix.norms[slot])})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].score > results[j].score
	})
	if len(results) > k {
		results = results[:k]
	}

	hits := make([]domain.SearchHit, len(results))
	for i, r := range results {
		e := ix.entries[r.slot]
		hits[i] = domain.SearchHit{Text: e.Text, Source: e.Source, Category: e.Category, Score: r.score}
	}
	return hits
}

// Stats summarises the entries for partition p.
func (ix *Index) Stats(p domain.Partition) domain.PartitionStats {
	sources := make(map[string]struct{})
	for _, e := range ix.entries {
		sources[e.Source] = struct{}{}
	}
	cats := make(map[string]int, len(ix.categories))
	for name, bm := range ix.categories {
		if n := bm.GetCardinality(); n > 0 {
			cats[name] = int(n)
		}
	}
	return domain.PartitionStats{
		Partition:  p,
		Entries:    len(ix.entries),
		Sources:    len(sources),
		Categories: cats,
	}
}

// Magnitude returns the Euclidean length of v.
func Magnitude(v []float32) float64 {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	return math.Sqrt(sum)
}

// CosineSimilarity returns the cosine of the angle between a and b.
// A zero vector has similarity 0 with everything.
func CosineSimilarity(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, ErrDimensionMismatch
	}
	return cosine(a, b, Magnitude(a), Magnitude(b)), nil
}

func cosine(a, b []float32, na, nb float64) float64 {
	if na == 0 || nb == 0 {
		return 0
	}
	var dot float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
	}
	return dot / (na * nb)
}
