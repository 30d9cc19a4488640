package filter

import (
	"testing"
	"time"

	"fexplorer/internal/entry"
)

func makeEntry(name string, size int64, kind entry.Kind) entry.Entry {
	return entry.Entry{
		Path:  "/test/" + name,
		Name:  name,
		Size:  size,
		Kind:  kind,
		Mtime: time.Now(),
	}
}

func TestGlobFilter(t *testing.T) {
	f, err := NewGlob([]string{"*.rs", "*.toml"})
	if err != nil {
		t.Fatalf("NewGlob() error = %v", err)
	}

	if !f.Test(makeEntry("main.rs", 100, entry.KindFile)) {
		t.Error("main.rs should match *.rs")
	}
	if !f.Test(makeEntry("Cargo.toml", 100, entry.KindFile)) {
		t.Error("Cargo.toml should match *.toml")
	}
	if f.Test(makeEntry("main.txt", 100, entry.KindFile)) {
		t.Error("main.txt should not match")
	}
}

func TestGlobFilter_Invalid(t *testing.T) {
	if _, err := NewGlob([]string{"[unclosed"}); err == nil {
		t.Error("invalid glob should fail at construction")
	}
}

func TestRegexFilter(t *testing.T) {
	f, err := NewRegex(`^test_.*\.go$`)
	if err != nil {
		t.Fatalf("NewRegex() error = %v", err)
	}

	if !f.Test(makeEntry("test_foo.go", 100, entry.KindFile)) {
		t.Error("test_foo.go should match")
	}
	if f.Test(makeEntry("main.go", 100, entry.KindFile)) {
		t.Error("main.go should not match")
	}

	if _, err := NewRegex("(unclosed"); err == nil {
		t.Error("invalid regex should fail at construction")
	}
}

func TestExtensionFilter(t *testing.T) {
	f := NewExtension([]string{"rs", ".TOML"})

	if !f.Test(makeEntry("main.rs", 100, entry.KindFile)) {
		t.Error("main.rs should match")
	}
	if !f.Test(makeEntry("Cargo.toml", 100, entry.KindFile)) {
		t.Error("extension matching should be case-insensitive")
	}
	if f.Test(makeEntry("readme.md", 100, entry.KindFile)) {
		t.Error("readme.md should not match")
	}
	if f.Test(makeEntry("Makefile", 100, entry.KindFile)) {
		t.Error("no extension should not match")
	}
}

func TestSizeFilter(t *testing.T) {
	f, err := NewSizeRange("1KB", "10KB")
	if err != nil {
		t.Fatalf("NewSizeRange() error = %v", err)
	}

	if f.Test(makeEntry("small.txt", 500, entry.KindFile)) {
		t.Error("500B below the minimum should be rejected")
	}
	if !f.Test(makeEntry("medium.txt", 5000, entry.KindFile)) {
		t.Error("5000B inside the range should be admitted")
	}
	if f.Test(makeEntry("large.txt", 20000, entry.KindFile)) {
		t.Error("20000B above the maximum should be rejected")
	}
	// Inclusive bounds.
	if !f.Test(makeEntry("min.txt", 1000, entry.KindFile)) {
		t.Error("exact minimum should be admitted")
	}
	if !f.Test(makeEntry("max.txt", 10000, entry.KindFile)) {
		t.Error("exact maximum should be admitted")
	}
	// Directories pass through.
	if !f.Test(makeEntry("dir", 0, entry.KindDir)) {
		t.Error("directories should pass the size filter")
	}
}

func TestDateFilter(t *testing.T) {
	now := time.Now()
	f, err := NewDateRange("7 days ago", "", now)
	if err != nil {
		t.Fatalf("NewDateRange() error = %v", err)
	}

	recent := makeEntry("recent.txt", 100, entry.KindFile)
	recent.Mtime = now.Add(-1 * time.Hour)
	old := makeEntry("old.txt", 100, entry.KindFile)
	old.Mtime = now.Add(-10 * 24 * time.Hour)
	ancient := makeEntry("ancient.txt", 100, entry.KindFile)
	ancient.Mtime = now.Add(-100 * 24 * time.Hour)

	if !f.Test(recent) {
		t.Error("1h-old file should pass after=7 days ago")
	}
	if f.Test(old) {
		t.Error("10d-old file should be rejected")
	}
	if f.Test(ancient) {
		t.Error("100d-old file should be rejected")
	}
}

func TestKindFilter(t *testing.T) {
	f := NewKind([]entry.Kind{entry.KindFile})

	if !f.Test(makeEntry("f.txt", 100, entry.KindFile)) {
		t.Error("file should match")
	}
	if f.Test(makeEntry("d", 0, entry.KindDir)) {
		t.Error("dir should not match")
	}
}

func TestCategoryFilter(t *testing.T) {
	f, err := NewCategory("source")
	if err != nil {
		t.Fatalf("NewCategory() error = %v", err)
	}

	if !f.Test(makeEntry("main.go", 100, entry.KindFile)) {
		t.Error("main.go should be source")
	}
	if f.Test(makeEntry("photo.png", 100, entry.KindFile)) {
		t.Error("photo.png should not be source")
	}
	if f.Test(makeEntry("src", 0, entry.KindDir)) {
		t.Error("directories belong to no category")
	}

	if _, err := NewCategory("nonsense"); err == nil {
		t.Error("unknown category should fail")
	}
}

func TestPipeline_ShortCircuitAndConjunction(t *testing.T) {
	ext := NewExtension([]string{"rs"})
	size, err := NewSizeRange("", "1KB")
	if err != nil {
		t.Fatal(err)
	}
	p := Pipeline{ext, size}

	if !p.Test(makeEntry("small.rs", 100, entry.KindFile)) {
		t.Error("small.rs should pass both predicates")
	}
	if p.Test(makeEntry("big.rs", 5000, entry.KindFile)) {
		t.Error("big.rs should fail the size predicate")
	}
	if p.Test(makeEntry("small.txt", 100, entry.KindFile)) {
		t.Error("small.txt should fail the extension predicate")
	}
}

func TestPipeline_Apply(t *testing.T) {
	p := Pipeline{NewExtension([]string{"rs"})}
	in := []entry.Entry{
		makeEntry("a.rs", 1, entry.KindFile),
		makeEntry("b.txt", 1, entry.KindFile),
		makeEntry("c.rs", 1, entry.KindFile),
	}

	out := p.Apply(in)
	if len(out) != 2 {
		t.Fatalf("Apply() kept %d entries, want 2", len(out))
	}
	if out[0].Name != "a.rs" || out[1].Name != "c.rs" {
		t.Errorf("Apply() = %v, want [a.rs c.rs]", out)
	}
}
