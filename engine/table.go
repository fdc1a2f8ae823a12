package engine

import "sync"

// Table is the reverse lookup table of one run: hash -> fully-qualified name.
// It is safe for concurrent use.
type Table struct {
	mu         sync.Mutex
	entries    map[string]string
	collisions int
}

// NewTable creates an empty table with room for sizeHint entries
func NewTable(sizeHint int) *Table {
	return &Table{entries: make(map[string]string, sizeHint)}
}

// Put stores fqdn under hash. An existing entry is overwritten; if it held a
// different name the overwrite is counted as a collision and true is returned.
func (t *Table) Put(hash, fqdn string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	prev, found := t.entries[hash]
	t.entries[hash] = fqdn

	if found && prev != fqdn {
		t.collisions++

		return true
	}

	return false
}

// Lookup returns the name stored under hash
func (t *Table) Lookup(hash string) (string, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	fqdn, found := t.entries[hash]

	return fqdn, found
}

// Len returns the number of entries
func (t *Table) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	return len(t.entries)
}

// Collisions returns how many entries were replaced by a different name
func (t *Table) Collisions() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.collisions
}

// Entries returns the underlying map. Only call it once no more Put calls can happen.
func (t *Table) Entries() map[string]string {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.entries
}
