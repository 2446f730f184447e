package beautify

import (
	"sort"
	"sync"
)

type registryEntry struct {
	provider Provider
	priority int
}

// Registry is a priority-ordered, language-keyed catalog of beautification
// providers. A provider may sit in several language buckets at once;
// removal takes it out of exactly the buckets named. Duplicate
// registrations of the same provider and language are retained and both
// entries are tried.
type Registry struct {
	mu      sync.RWMutex
	buckets map[string][]registryEntry
}

func NewRegistry() *Registry {
	return &Registry{
		buckets: make(map[string][]registryEntry),
	}
}

// Register adds the provider under each given language id (or the
// AllLanguages bucket). Buckets stay sorted by descending priority; ties
// keep registration order.
func (r *Registry) Register(provider Provider, languageIDs []string, priority int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Stable sort keeps registration order on priority ties.
	for _, id := range languageIDs {
		bucket := append(r.buckets[id], registryEntry{
			provider: provider,
			priority: priority,
		})
		sort.SliceStable(bucket, func(i, j int) bool {
			return bucket[i].priority > bucket[j].priority
		})
		r.buckets[id] = bucket
	}
}

// Remove takes the provider out of exactly the named language buckets.
// Buckets where the provider is absent are left untouched.
func (r *Registry) Remove(provider Provider, languageIDs []string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, id := range languageIDs {
		bucket, exists := r.buckets[id]
		if !exists {
			continue
		}

		kept := bucket[:0]
		for _, entry := range bucket {
			if entry.provider != provider {
				kept = append(kept, entry)
			}
		}

		if len(kept) == 0 {
			delete(r.buckets, id)
			continue
		}
		r.buckets[id] = kept
	}
}

// Candidates returns the providers eligible for the language, merging the
// language-specific bucket with the AllLanguages bucket by descending
// priority. At equal priority the language-specific provider comes first;
// within a bucket, registration order is preserved.
func (r *Registry) Candidates(languageID string) []Provider {
	r.mu.RLock()
	defer r.mu.RUnlock()

	specific := r.buckets[languageID]
	all := r.buckets[AllLanguages]
	if languageID == AllLanguages {
		specific = nil
	}

	candidates := make([]Provider, 0, len(specific)+len(all))
	i, j := 0, 0
	for i < len(specific) && j < len(all) {
		if all[j].priority > specific[i].priority {
			candidates = append(candidates, all[j].provider)
			j++
			continue
		}
		candidates = append(candidates, specific[i].provider)
		i++
	}
	for ; i < len(specific); i++ {
		candidates = append(candidates, specific[i].provider)
	}
	for ; j < len(all); j++ {
		candidates = append(candidates, all[j].provider)
	}

	return candidates
}
