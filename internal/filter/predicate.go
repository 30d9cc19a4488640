// Package filter implements the composable predicate pipeline applied
// to traversal entries. Predicates are pure and safe for concurrent
// use; a pipeline is the ordered conjunction of its predicates and
// short-circuits on the first rejection.
package filter

import (
	"path"
	"regexp"
	"strings"
	"time"

	"fexplorer/internal/entry"
	"fexplorer/internal/errors"
)

// Predicate is a pure function from entry to keep/drop.
type Predicate interface {
	Test(e entry.Entry) bool
}

// Pipeline is an ordered conjunction of predicates.
type Pipeline []Predicate

// Test reports whether every predicate admits the entry. The first
// rejection short-circuits the rest.
func (p Pipeline) Test(e entry.Entry) bool {
	for _, pred := range p {
		if !pred.Test(e) {
			return false
		}
	}
	return true
}

// Apply filters a slice of entries through the pipeline.
func (p Pipeline) Apply(entries []entry.Entry) []entry.Entry {
	if len(p) == 0 {
		return entries
	}
	out := make([]entry.Entry, 0, len(entries))
	for _, e := range entries {
		if p.Test(e) {
			out = append(out, e)
		}
	}
	return out
}

// globFilter admits entries whose name matches any pattern.
type globFilter struct {
	patterns []string
}

// NewGlob builds an any-of glob name filter. Patterns are validated up
// front so a bad pattern fails the query, not silently every entry.
func NewGlob(patterns []string) (Predicate, error) {
	for _, pat := range patterns {
		if _, err := path.Match(pat, "probe"); err != nil {
			return nil, errors.New(errors.ParseError, "invalid glob pattern: "+pat, err)
		}
	}
	return &globFilter{patterns: patterns}, nil
}

func (f *globFilter) Test(e entry.Entry) bool {
	for _, pat := range f.patterns {
		if ok, _ := path.Match(pat, e.Name); ok {
			return true
		}
	}
	return false
}

// regexFilter admits entries whose name matches the expression.
type regexFilter struct {
	re *regexp.Regexp
}

// NewRegex builds a regex name filter.
func NewRegex(pattern string) (Predicate, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, errors.New(errors.ParseError, "invalid regex pattern: "+pattern, err)
	}
	return &regexFilter{re: re}, nil
}

func (f *regexFilter) Test(e entry.Entry) bool {
	return f.re.MatchString(e.Name)
}

// extFilter admits entries whose extension is in the set.
type extFilter struct {
	exts map[string]struct{}
}

// NewExtension builds an extension-set filter. Matching is
// case-insensitive; leading dots in the inputs are tolerated.
func NewExtension(exts []string) Predicate {
	set := make(map[string]struct{}, len(exts))
	for _, ext := range exts {
		set[normalizeExt(ext)] = struct{}{}
	}
	return &extFilter{exts: set}
}

func (f *extFilter) Test(e entry.Entry) bool {
	_, ok := f.exts[e.Ext()]
	return ok
}

// sizeFilter admits files within the inclusive byte range.
// Directories pass through; their size is an aggregation concern.
type sizeFilter struct {
	min, max int64
	hasMin   bool
	hasMax   bool
}

// NewSizeRange builds a size filter from optional human-readable bounds
// ("10KB", "2MiB", bare bytes). Empty strings leave the bound open.
func NewSizeRange(minExpr, maxExpr string) (Predicate, error) {
	f := &sizeFilter{}
	if minExpr != "" {
		n, err := ParseSize(minExpr)
		if err != nil {
			return nil, err
		}
		f.min, f.hasMin = n, true
	}
	if maxExpr != "" {
		n, err := ParseSize(maxExpr)
		if err != nil {
			return nil, err
		}
		f.max, f.hasMax = n, true
	}
	return f, nil
}

func (f *sizeFilter) Test(e entry.Entry) bool {
	if e.Kind == entry.KindDir {
		return true
	}
	if f.hasMin && e.Size < f.min {
		return false
	}
	if f.hasMax && e.Size > f.max {
		return false
	}
	return true
}

// dateFilter admits entries within the inclusive mtime range.
type dateFilter struct {
	after, before time.Time
	hasAfter      bool
	hasBefore     bool
}

// NewDateRange builds an mtime filter from optional date expressions
// (ISO-8601, "7 days ago", "yesterday"). Relative expressions resolve
// against now once, at query start.
func NewDateRange(afterExpr, beforeExpr string, now time.Time) (Predicate, error) {
	f := &dateFilter{}
	if afterExpr != "" {
		ts, err := ParseDate(afterExpr, now)
		if err != nil {
			return nil, err
		}
		f.after, f.hasAfter = ts, true
	}
	if beforeExpr != "" {
		ts, err := ParseDate(beforeExpr, now)
		if err != nil {
			return nil, err
		}
		f.before, f.hasBefore = ts, true
	}
	return f, nil
}

func (f *dateFilter) Test(e entry.Entry) bool {
	if f.hasAfter && e.Mtime.Before(f.after) {
		return false
	}
	if f.hasBefore && e.Mtime.After(f.before) {
		return false
	}
	return true
}

// kindFilter admits entries of the listed kinds.
type kindFilter struct {
	kinds map[entry.Kind]struct{}
}

// NewKind builds a kind filter.
func NewKind(kinds []entry.Kind) Predicate {
	set := make(map[entry.Kind]struct{}, len(kinds))
	for _, k := range kinds {
		set[k] = struct{}{}
	}
	return &kindFilter{kinds: set}
}

func (f *kindFilter) Test(e entry.Entry) bool {
	_, ok := f.kinds[e.Kind]
	return ok
}

// categoryFilter admits files whose extension maps to the category.
type categoryFilter struct {
	category entry.Category
}

// NewCategory builds a category filter from its name.
func NewCategory(name string) (Predicate, error) {
	c, ok := entry.ParseCategory(name)
	if !ok {
		return nil, errors.Newf(errors.ParseError, "unknown category %q", name)
	}
	return &categoryFilter{category: c}, nil
}

func (f *categoryFilter) Test(e entry.Entry) bool {
	return e.HasCategory(f.category)
}

func normalizeExt(ext string) string {
	return strings.ToLower(strings.TrimLeft(ext, "."))
}
