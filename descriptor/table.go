package descriptor

import (
	"github.com/wippyai/aot-runtime/errors"
)

// Table is an immutable, ordered collection of descriptors built at
// deployment-image construction time.
type Table struct {
	entries []Entry
	byName  map[string]int
}

// New builds a table from the build step's record sequence. Consumption
// stops at the first sentinel record (empty name), mirroring the
// sentinel-terminated layout the translator emits. Duplicate names and
// entries without a payload are construction errors.
func New(records []Entry) (*Table, error) {
	t := &Table{
		byName: make(map[string]int, len(records)),
	}

	for _, rec := range records {
		if rec.Name == "" {
			break
		}
		if rec.Payload == nil {
			return nil, errors.New(errors.PhaseRegister, errors.KindBadImage).
				Module(rec.Name).
				Detail("descriptor has no payload").
				Build()
		}
		if _, exists := t.byName[rec.Name]; exists {
			return nil, errors.Duplicate(errors.PhaseRegister, "descriptor "+rec.Name)
		}
		t.byName[rec.Name] = len(t.entries)
		t.entries = append(t.entries, rec)
	}

	return t, nil
}

// Find returns the descriptor for an exact dotted name. Lookup order is
// never semantically significant; only presence matters.
func (t *Table) Find(name string) (*Entry, bool) {
	i, ok := t.byName[name]
	if !ok {
		return nil, false
	}
	return &t.entries[i], true
}

// Len returns the number of descriptors in the table.
func (t *Table) Len() int {
	return len(t.entries)
}

// Entries returns the descriptors in table order. The returned slice is
// shared; callers must not modify it.
func (t *Table) Entries() []Entry {
	return t.entries
}
