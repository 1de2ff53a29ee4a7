package host

// FrozenEntry describes a module known to the host's own built-in table,
// outside any descriptor table.
type FrozenEntry struct {
	Name string
	Init InitFunc
}

// FrozenTable is the host runtime's built-in module registry. It answers
// the "does a frozen module with this name exist" predicate the loader
// consults when its descriptor table has no match.
type FrozenTable struct {
	inits map[string]InitFunc
}

// NewFrozenTable builds a frozen table from entries. Later duplicates
// are ignored, matching first-match lookup over a fixed table.
func NewFrozenTable(entries ...FrozenEntry) *FrozenTable {
	t := &FrozenTable{
		inits: make(map[string]InitFunc, len(entries)),
	}
	for _, e := range entries {
		if e.Name == "" {
			continue
		}
		if _, exists := t.inits[e.Name]; exists {
			continue
		}
		t.inits[e.Name] = e.Init
	}
	return t
}

// Has reports whether a frozen module with this exact name exists.
func (t *FrozenTable) Has(name string) bool {
	if t == nil {
		return false
	}
	_, ok := t.inits[name]
	return ok
}

func (t *FrozenTable) init(name string) (InitFunc, bool) {
	if t == nil {
		return nil, false
	}
	fn, ok := t.inits[name]
	return fn, ok
}
