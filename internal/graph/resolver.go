package graph

import (
	"sort"
	"strings"
)

const (
	// maxCandidates caps how many fuzzy matches a resolution returns.
	maxCandidates = 5
	// maxEditDistance bounds the fuzzy match; beyond two edits a name is
	// considered a different name, not a variant spelling.
	maxEditDistance = 2
	// minScore is the similarity floor below which a candidate is rejected.
	minScore = 0.7
)

// Candidate is a possible resolution of a free-text name to a person.
type Candidate struct {
	ID    string
	Name  string
	Score float64
	// Via says which name matched: the canonical name or a variant.
	Via string
}

// Resolver maps free-text names (including variant spellings and
// transliterations such as Abram/Abraham) to person identifiers. It is a
// pure function of the store's name data and never touches relationship
// edges, so its matching policy can be tuned independently of traversal.
type Resolver struct {
	canonical map[string][]string // lowercased canonical name -> person ids
	variants  map[string][]string // lowercased variant name -> person ids
	people    map[string]*Person
	names     []indexedName
}

type indexedName struct {
	lower string
	id    string
	name  string
}

// NewResolver builds a resolver from the store's name data.
func NewResolver(store *Store) *Resolver {
	r := &Resolver{
		canonical: make(map[string][]string),
		variants:  make(map[string][]string),
		people:    make(map[string]*Person),
	}
	for _, p := range store.People() {
		r.people[p.ID] = p
		lower := strings.ToLower(p.Name)
		r.canonical[lower] = append(r.canonical[lower], p.ID)
		r.names = append(r.names, indexedName{lower: lower, id: p.ID, name: p.Name})
		for _, alias := range p.AlsoCalled {
			aliasLower := strings.ToLower(alias)
			r.variants[aliasLower] = append(r.variants[aliasLower], p.ID)
			r.names = append(r.names, indexedName{lower: aliasLower, id: p.ID, name: alias})
		}
	}
	return r
}

// Resolve returns ranked candidates for a name: an exact identifier match
// first, then exact canonical matches, then exact variant matches, then
// bounded edit-distance matches against both sets. The result may be empty.
func (r *Resolver) Resolve(name string) []Candidate {
	trimmed := strings.TrimSpace(name)
	if p, ok := r.people[trimmed]; ok {
		return []Candidate{{ID: p.ID, Name: p.Name, Score: 1.0, Via: "id"}}
	}

	query := strings.ToLower(trimmed)
	if query == "" {
		return nil
	}

	if ids, ok := r.canonical[query]; ok {
		return r.exactCandidates(ids, 1.0, "canonical")
	}
	if ids, ok := r.variants[query]; ok {
		return r.exactCandidates(ids, 0.9, "variant")
	}
	return r.fuzzyCandidates(query)
}

// ResolveOne resolves a name to exactly one person. It fails with
// ErrPersonNotFound when no candidate clears the similarity threshold, and
// with AmbiguousNameError when several top candidates rank equally.
func (r *Resolver) ResolveOne(name string) (*Person, error) {
	candidates := r.Resolve(name)
	if len(candidates) == 0 {
		return nil, &notFoundError{kind: KindPerson, key: name}
	}
	if len(candidates) > 1 && candidates[1].Score == candidates[0].Score && candidates[1].ID != candidates[0].ID {
		return nil, &AmbiguousNameError{Name: name, Candidates: candidates}
	}
	return r.people[candidates[0].ID], nil
}

func (r *Resolver) exactCandidates(ids []string, score float64, via string) []Candidate {
	out := make([]Candidate, 0, len(ids))
	seen := make(map[string]bool)
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, Candidate{ID: id, Name: r.people[id].Name, Score: score, Via: via})
	}
	sortCandidates(out)
	return out
}

func (r *Resolver) fuzzyCandidates(query string) []Candidate {
	best := make(map[string]Candidate)
	for _, n := range r.names {
		// Cheap length filter before computing the distance.
		if abs(len(n.lower)-len(query)) > maxEditDistance {
			continue
		}
		dist := editDistance(query, n.lower, maxEditDistance)
		if dist < 0 {
			continue
		}
		longer := max(len(query), len(n.lower))
		if longer == 0 {
			continue
		}
		score := 1.0 - float64(dist)/float64(longer)
		if score < minScore {
			continue
		}
		if prev, ok := best[n.id]; !ok || score > prev.Score {
			best[n.id] = Candidate{ID: n.id, Name: r.people[n.id].Name, Score: score, Via: n.name}
		}
	}

	out := make([]Candidate, 0, len(best))
	for _, c := range best {
		out = append(out, c)
	}
	sortCandidates(out)
	if len(out) > maxCandidates {
		out = out[:maxCandidates]
	}
	return out
}

// sortCandidates orders by score descending, then identifier, so equal
// scores produce a stable, deterministic ranking.
func sortCandidates(cs []Candidate) {
	sort.Slice(cs, func(i, j int) bool {
		if cs[i].Score != cs[j].Score {
			return cs[i].Score > cs[j].Score
		}
		return cs[i].ID < cs[j].ID
	})
}

// editDistance computes the Levenshtein distance between a and b, giving up
// and returning -1 once the distance is guaranteed to exceed limit.
func editDistance(a, b string, limit int) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) > len(rb) {
		ra, rb = rb, ra
	}
	prev := make([]int, len(ra)+1)
	curr := make([]int, len(ra)+1)
	for i := range prev {
		prev[i] = i
	}

	for j := 1; j <= len(rb); j++ {
		curr[0] = j
		rowMin := curr[0]
		for i := 1; i <= len(ra); i++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[i] = min(prev[i]+1, curr[i-1]+1, prev[i-1]+cost)
			if curr[i] < rowMin {
				rowMin = curr[i]
			}
		}
		if rowMin > limit {
			return -1
		}
		prev, curr = curr, prev
	}
	if prev[len(ra)] > limit {
		return -1
	}
	return prev[len(ra)]
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
