package cache

import (
	"path/filepath"
	"testing"
)

func TestStoreAndLookupRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lacc.db")
	store, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	src := "programa P\ninicio\nfim\n"
	hash := Key(src)

	if _, ok, err := store.Lookup(hash, "emit"); err != nil || ok {
		t.Fatalf("expected no cached entry, got ok=%v err=%v", ok, err)
	}

	id, err := store.Store(hash, "emit", []byte("int main() { return 0; }"))
	if err != nil {
		t.Fatalf("Store: %v", err)
	}
	if id == "" {
		t.Fatal("expected a non-empty row id")
	}

	out, ok, err := store.Lookup(hash, "emit")
	if err != nil || !ok {
		t.Fatalf("expected cached entry, got ok=%v err=%v", ok, err)
	}
	if string(out) != "int main() { return 0; }" {
		t.Fatalf("got %q", out)
	}

	if _, ok, _ := store.Lookup(hash, "check-only"); ok {
		t.Fatal("expected a different mode to miss")
	}
}

func TestKeyIsStableAndSensitiveToContent(t *testing.T) {
	if Key("a") != Key("a") {
		t.Fatal("Key should be deterministic")
	}
	if Key("a") == Key("b") {
		t.Fatal("Key should differ for different source text")
	}
}
