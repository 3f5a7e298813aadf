// ABOUTME: Test suite for the override store covering default fallback, set, and reset.
// ABOUTME: Verifies overrides win over defaults and that reset restores every default.

package content

import "testing"

func TestGetFallsBackToDefault(t *testing.T) {
	store := NewStore()

	got := store.Get("hero_title", "Miravalle Residences")
	if got != "Miravalle Residences" {
		t.Fatalf("expected default, got %q", got)
	}
}

func TestSetThenGetReturnsOverride(t *testing.T) {
	store := NewStore()

	store.Set("hero_title", "New Title")
	if got := store.Get("hero_title", "Miravalle Residences"); got != "New Title" {
		t.Fatalf("expected override, got %q", got)
	}

	// A second set replaces unconditionally.
	store.Set("hero_title", "Newer Title")
	if got := store.Get("hero_title", "Miravalle Residences"); got != "Newer Title" {
		t.Fatalf("expected replaced override, got %q", got)
	}
}

func TestResetAllRevertsEveryKey(t *testing.T) {
	store := NewStore()

	store.Set("hero_title", "New Title")
	store.Set("about_heading", "Changed")
	if store.Len() != 2 {
		t.Fatalf("expected 2 overrides, got %d", store.Len())
	}

	store.ResetAll()

	if store.Len() != 0 {
		t.Fatalf("expected 0 overrides after reset, got %d", store.Len())
	}
	if got := store.Get("hero_title", "Miravalle Residences"); got != "Miravalle Residences" {
		t.Fatalf("expected default after reset, got %q", got)
	}
	if got := store.Get("about_heading", "A neighborhood"); got != "A neighborhood" {
		t.Fatalf("expected default after reset, got %q", got)
	}
}

func TestLookupDistinguishesMissingFromEmpty(t *testing.T) {
	store := NewStore()

	if _, ok := store.Lookup("hero_title"); ok {
		t.Fatal("expected no override before set")
	}

	store.Set("hero_title", "")
	v, ok := store.Lookup("hero_title")
	if !ok {
		t.Fatal("expected override after set")
	}
	if v != "" {
		t.Fatalf("expected empty override value, got %q", v)
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	store := NewStore()
	store.Set("hero_title", "New Title")

	snap := store.Snapshot()
	snap["hero_title"] = "mutated"

	if got := store.Get("hero_title", ""); got != "New Title" {
		t.Fatalf("snapshot mutation leaked into store: %q", got)
	}
}

func TestStoredValuePreservesLineBreaks(t *testing.T) {
	store := NewStore()

	store.Set("about_body", "A\nB")
	if got := store.Get("about_body", ""); got != "A\nB" {
		t.Fatalf("expected line break preserved, got %q", got)
	}
}
