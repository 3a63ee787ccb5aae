package diag

import (
	"sort"

	"pyrite/internal/source"
)

// Bag accumulates the diagnostics of one compilation. It is bounded: once
// max entries are held, further adds are dropped, so a pathological input
// cannot flood the output.
type Bag struct {
	items []Diagnostic
	max   uint16
}

func NewBag(max int) *Bag {
	return &Bag{
		items: make([]Diagnostic, 0, max),
		max:   uint16(max),
	}
}

// Add appends d unless the cap is already reached. The return value reports
// whether d was kept.
func (b *Bag) Add(d Diagnostic) bool {
	if len(b.items) >= int(b.max) {
		return false
	}
	b.items = append(b.items, d)
	return true
}

func (b *Bag) Cap() uint16 { return b.max }

func (b *Bag) Len() int { return len(b.items) }

// Items exposes the collected diagnostics. The slice is shared; callers must
// treat it as read-only.
func (b *Bag) Items() []Diagnostic { return b.items }

// HasErrors reports whether anything at SevError or above was collected.
func (b *Bag) HasErrors() bool {
	for i := range b.items {
		if b.items[i].Severity >= SevError {
			return true
		}
	}
	return false
}

// HasCategory reports whether any collected diagnostic falls in cat.
func (b *Bag) HasCategory(cat Category) bool {
	for i := range b.items {
		if b.items[i].Code.Category() == cat {
			return true
		}
	}
	return false
}

// Merge appends every diagnostic from other, growing the cap as needed so
// nothing already collected is lost.
func (b *Bag) Merge(other *Bag) {
	if n := len(b.items) + len(other.items); uint16(n) > b.max {
		b.max = uint16(n)
	}
	b.items = append(b.items, other.items...)
}

// Sort puts the diagnostics in presentation order: by file, then span, then
// severity (errors first within one span), then code. The order is a pure
// function of the contents, so output is reproducible.
func (b *Bag) Sort() {
	sort.SliceStable(b.items, func(i, j int) bool {
		return before(&b.items[i], &b.items[j])
	})
}

func before(x, y *Diagnostic) bool {
	if x.Primary.File != y.Primary.File {
		return x.Primary.File < y.Primary.File
	}
	if x.Primary.Start != y.Primary.Start {
		return x.Primary.Start < y.Primary.Start
	}
	if x.Primary.End != y.Primary.End {
		return x.Primary.End < y.Primary.End
	}
	if x.Severity != y.Severity {
		return x.Severity > y.Severity
	}
	return x.Code < y.Code
}

// Dedup keeps the first diagnostic per (code, primary span) pair. Recovery
// paths in the parser can report the same failure twice; users should see it
// once.
func (b *Bag) Dedup() {
	type identity struct {
		code Code
		span source.Span
	}
	seen := make(map[identity]bool, len(b.items))
	kept := b.items[:0]
	for _, d := range b.items {
		id := identity{d.Code, d.Primary}
		if seen[id] {
			continue
		}
		seen[id] = true
		kept = append(kept, d)
	}
	b.items = kept
}
