package domain

import "testing"

func TestDefaultCatalogShape(t *testing.T) {
	catalog := DefaultCatalog()

	if catalog.Size() != 24 {
		t.Fatalf("catalog size = %d, want 24", catalog.Size())
	}

	cases := []struct {
		resource string
		action   string
		want     PermissionID
	}{
		{"machines", "view", "1"},
		{"workorders", "assign", "9"},
		{"inventory", "adjust", "14"},
		{"reports", "export", "16"},
		{"team", "delete", "20"},
		{"settings", "edit", "22"},
		{"permissions", "edit", "24"},
	}
	for _, tc := range cases {
		if got := catalog.Lookup(tc.resource, tc.action); got != tc.want {
			t.Errorf("Lookup(%s, %s) = %s, want %s", tc.resource, tc.action, got, tc.want)
		}
	}
}

func TestCatalogLookupUnknownPanics(t *testing.T) {
	catalog := DefaultCatalog()

	defer func() {
		if recover() == nil {
			t.Fatal("expected Lookup to panic on an unknown pair")
		}
	}()
	catalog.Lookup("machines", "launch")
}

func TestNewCatalogDuplicateIDPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected NewCatalog to panic on a duplicate ID")
		}
	}()
	NewCatalog([]Permission{
		{ID: "1", Resource: "machines", Action: "view"},
		{ID: "1", Resource: "machines", Action: "edit"},
	})
}

func TestCatalogContainsAndGet(t *testing.T) {
	catalog := DefaultCatalog()

	if !catalog.Contains("1") {
		t.Fatal("expected catalog to contain ID 1")
	}
	if catalog.Contains("99") {
		t.Fatal("did not expect catalog to contain ID 99")
	}

	p, ok := catalog.Get("9")
	if !ok {
		t.Fatal("expected Get(9) to succeed")
	}
	if p.Resource != "workorders" || p.Action != "assign" {
		t.Fatalf("Get(9) = %+v", p)
	}
}

func TestCatalogGroupedByResourcePreservesOrder(t *testing.T) {
	grouped := DefaultCatalog().GroupedByResource()

	wantOrder := []string{"machines", "workorders", "inventory", "reports", "team", "settings", "permissions"}
	if len(grouped) != len(wantOrder) {
		t.Fatalf("group count = %d, want %d", len(grouped), len(wantOrder))
	}
	total := 0
	for i, group := range grouped {
		if group.Resource != wantOrder[i] {
			t.Fatalf("group %d = %s, want %s", i, group.Resource, wantOrder[i])
		}
		total += len(group.Permissions)
	}
	if total != 24 {
		t.Fatalf("grouped permission count = %d, want 24", total)
	}
}
