package world

// Table maps world ids to statistics file paths and remembers insertion
// order. Re-setting an id replaces its path in place.
type Table struct {
	ids   []ID
	paths map[ID]string
}

// NewTable creates an empty Table.
func NewTable() *Table {
	return &Table{paths: make(map[ID]string)}
}

// Set stores path for id.
func (t *Table) Set(id ID, path string) {
	if _, ok := t.paths[id]; !ok {
		t.ids = append(t.ids, id)
	}
	t.paths[id] = path
}

// Get returns the path for id.
func (t *Table) Get(id ID) (string, bool) {
	p, ok := t.paths[id]
	return p, ok
}

// Merge copies every entry of other into t; other wins on collisions.
func (t *Table) Merge(other *Table) {
	for _, id := range other.ids {
		t.Set(id, other.paths[id])
	}
}

// IDs returns the ids in insertion order.
func (t *Table) IDs() []ID {
	return append([]ID(nil), t.ids...)
}

// First returns the earliest inserted entry.
func (t *Table) First() (ID, string, bool) {
	if len(t.ids) == 0 {
		return "", "", false
	}
	return t.ids[0], t.paths[t.ids[0]], true
}

// Len reports the number of worlds.
func (t *Table) Len() int { return len(t.ids) }
