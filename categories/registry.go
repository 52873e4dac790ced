package categories

// Category is one entry of the fixed content-category table.
type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Sections    int    `json:"sections"`
}

// CategoryCount is a category annotated with how many active lessons
// reference it.
type CategoryCount struct {
	Category
	Count int `json:"count"`
}

// Registry is a read-only category table. It is passed as a value to
// the stores and handlers that need it so tests can substitute a
// smaller table.
type Registry struct {
	entries []Category
	byID    map[string]Category
}

// NewRegistry builds a registry from an explicit entry list.
func NewRegistry(entries []Category) *Registry {
	byID := make(map[string]Category, len(entries))
	for _, e := range entries {
		byID[e.ID] = e
	}
	return &Registry{entries: entries, byID: byID}
}

// Default returns the registry of Indian-law content categories the
// platform ships with.
func Default() *Registry {
	return NewRegistry([]Category{
		{ID: "constitution", Name: "Constitution of India", Description: "Fundamental law of India", Sections: 470},
		{ID: "ipc", Name: "Indian Penal Code (IPC)", Description: "Criminal offenses and punishments", Sections: 511},
		{ID: "bns", Name: "Bharatiya Nyaya Sanhita (BNS)", Description: "New criminal code replacing IPC", Sections: 358},
		{ID: "crpc", Name: "Code of Criminal Procedure (CrPC)", Description: "Criminal procedure code", Sections: 484},
		{ID: "bnss", Name: "Bharatiya Nagarik Suraksha Sanhita (BNSS)", Description: "New criminal procedure code", Sections: 531},
		{ID: "iea", Name: "Indian Evidence Act", Description: "Law of evidence", Sections: 167},
		{ID: "bse", Name: "Bharatiya Sakshya Adhiniyam (BSE)", Description: "New evidence law", Sections: 170},
		{ID: "cpc", Name: "Civil Procedure Code (CPC)", Description: "Civil court procedures", Sections: 158},
		{ID: "contract", Name: "Indian Contract Act", Description: "Law of contracts", Sections: 238},
		{ID: "companies", Name: "Companies Act", Description: "Corporate law", Sections: 470},
	})
}

// All returns every category in table order.
func (r *Registry) All() []Category {
	out := make([]Category, len(r.entries))
	copy(out, r.entries)
	return out
}

// IsValid reports whether id names a registered category.
func (r *Registry) IsValid(id string) bool {
	_, ok := r.byID[id]
	return ok
}

// Get looks up a category by id.
func (r *Registry) Get(id string) (Category, bool) {
	c, ok := r.byID[id]
	return c, ok
}

// IDs returns the valid category ids in table order, for error
// messages naming the allowed set.
func (r *Registry) IDs() []string {
	ids := make([]string, len(r.entries))
	for i, e := range r.entries {
		ids[i] = e.ID
	}
	return ids
}

// WithCounts merges per-category usage counts onto the full table.
// Registry entries are a superset of what is in use, so categories
// missing from counts report 0.
func (r *Registry) WithCounts(counts map[string]int) []CategoryCount {
	out := make([]CategoryCount, len(r.entries))
	for i, e := range r.entries {
		out[i] = CategoryCount{Category: e, Count: counts[e.ID]}
	}
	return out
}
