package negotiation

type poolEntry[T any] struct {
	tag    string
	parsed T
}

// pool holds the available locales not yet claimed by a tier, in input order.
type pool[T any] struct {
	entries []poolEntry[T]
	seen    map[string]struct{}
}

func newPool[T any](capacity int) *pool[T] {
	return &pool[T]{
		entries: make([]poolEntry[T], 0, capacity),
		seen:    make(map[string]struct{}, capacity),
	}
}

// add appends tag unless the same string was added before.
func (p *pool[T]) add(tag string, parsed T) bool {
	if _, ok := p.seen[tag]; ok {
		return false
	}
	p.seen[tag] = struct{}{}
	p.entries = append(p.entries, poolEntry[T]{tag: tag, parsed: parsed})
	return true
}

func (p *pool[T]) len() int {
	return len(p.entries)
}

// take partitions the pool into the entries accepted by match (at most limit
// of them, zero meaning all) and the remainder, which becomes the new pool.
// Accepted tags are returned in pool order.
func (p *pool[T]) take(limit int, match func(candidate T) bool) []string {
	if len(p.entries) == 0 {
		return nil
	}

	var taken []string
	remaining := make([]poolEntry[T], 0, len(p.entries))
	for _, entry := range p.entries {
		if (limit == 0 || len(taken) < limit) && match(entry.parsed) {
			taken = append(taken, entry.tag)
			continue
		}
		remaining = append(remaining, entry)
	}
	p.entries = remaining
	return taken
}
