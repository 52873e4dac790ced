package categories

import "testing"

func TestDefaultRegistry(t *testing.T) {
	r := Default()

	all := r.All()
	if len(all) != 10 {
		t.Fatalf("Default() has %d categories, want 10", len(all))
	}
	if all[0].ID != "constitution" || all[len(all)-1].ID != "companies" {
		t.Errorf("table order wrong: first %q last %q", all[0].ID, all[len(all)-1].ID)
	}

	for _, id := range []string{"constitution", "ipc", "bns", "crpc", "bnss", "iea", "bse", "cpc", "contract", "companies"} {
		if !r.IsValid(id) {
			t.Errorf("IsValid(%q) = false", id)
		}
	}
	for _, id := range []string{"", "IPC", "tort", "constitution "} {
		if r.IsValid(id) {
			t.Errorf("IsValid(%q) = true", id)
		}
	}

	c, ok := r.Get("bns")
	if !ok || c.Name != "Bharatiya Nyaya Sanhita (BNS)" || c.Sections != 358 {
		t.Errorf("Get(bns) = %+v, %v", c, ok)
	}
}

func TestRegistryIDs(t *testing.T) {
	r := NewRegistry([]Category{
		{ID: "b", Name: "B"},
		{ID: "a", Name: "A"},
	})
	ids := r.IDs()
	if len(ids) != 2 || ids[0] != "b" || ids[1] != "a" {
		t.Errorf("IDs() = %v, want table order [b a]", ids)
	}
}

func TestWithCounts(t *testing.T) {
	r := NewRegistry([]Category{
		{ID: "ipc", Name: "IPC"},
		{ID: "cpc", Name: "CPC"},
		{ID: "iea", Name: "IEA"},
	})

	out := r.WithCounts(map[string]int{"ipc": 4, "iea": 1, "unknown": 9})

	if len(out) != 3 {
		t.Fatalf("WithCounts returned %d entries, want 3", len(out))
	}
	if out[0].ID != "ipc" || out[0].Count != 4 {
		t.Errorf("out[0] = %+v", out[0])
	}
	if out[1].ID != "cpc" || out[1].Count != 0 {
		t.Errorf("category without lessons should count 0, got %+v", out[1])
	}
	if out[2].ID != "iea" || out[2].Count != 1 {
		t.Errorf("out[2] = %+v", out[2])
	}
}

func TestWithCountsNilMap(t *testing.T) {
	r := NewRegistry([]Category{{ID: "x", Name: "X"}})
	out := r.WithCounts(nil)
	if len(out) != 1 || out[0].Count != 0 {
		t.Errorf("WithCounts(nil) = %+v", out)
	}
}
