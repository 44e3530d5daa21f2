package genome

import "sort"

// Index provides O(log n + k) overlap queries over annotation intervals
// using a sorted-slice layout with a prefix-max array. Intervals are
// loaded once and never modified after build.
//
// Overlap results are ordered by interval start ascending; intervals
// sharing a start keep their annotation-table insertion order. Every
// consumer that must pick "the first hit" relies on this ordering.
type Index struct {
	intervals []entry
	coding    []entry
	maxEnd    []int64 // maxEnd[i] = max(End) for intervals[:i+1]
}

type entry struct {
	Interval
	ord int // insertion order, tie-break for equal starts
}

// NewIndex builds an index from annotation-table intervals.
func NewIndex(intervals []Interval) *Index {
	if len(intervals) == 0 {
		return &Index{}
	}

	entries := make([]entry, len(intervals))
	for i, iv := range intervals {
		entries[i] = entry{Interval: iv, ord: i}
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Start != entries[j].Start {
			return entries[i].Start < entries[j].Start
		}
		return entries[i].ord < entries[j].ord
	})

	// Prefix-max array: maxEnd[i] = max(end) over entries[:i+1].
	// If maxEnd[i] < pos, no interval at or before i can contain pos.
	maxEnd := make([]int64, len(entries))
	maxEnd[0] = entries[0].End
	for i := 1; i < len(entries); i++ {
		maxEnd[i] = entries[i].End
		if maxEnd[i-1] > maxEnd[i] {
			maxEnd[i] = maxEnd[i-1]
		}
	}

	var coding []entry
	for _, e := range entries {
		if e.IsCoding() {
			coding = append(coding, e)
		}
	}

	return &Index{intervals: entries, coding: coding, maxEnd: maxEnd}
}

// Overlaps returns every interval whose [Start, End] contains pos,
// ordered by start ascending (insertion order breaking ties).
func (x *Index) Overlaps(pos int64) []Interval {
	if len(x.intervals) == 0 {
		return nil
	}

	// Binary search: candidates are all intervals with start <= pos.
	hi := sort.Search(len(x.intervals), func(i int) bool {
		return x.intervals[i].Start > pos
	})

	var hits []Interval
	for i := hi - 1; i >= 0; i-- {
		if x.maxEnd[i] < pos {
			break
		}
		if x.intervals[i].End >= pos {
			hits = append(hits, x.intervals[i].Interval)
		}
	}

	// Collected back-to-front; restore ascending start order.
	for l, r := 0, len(hits)-1; l < r; l, r = l+1, r-1 {
		hits[l], hits[r] = hits[r], hits[l]
	}
	return hits
}

// CodingOverlaps returns the coding intervals containing pos, using
// the same ordering rule as Overlaps. The coding subset is small
// enough that a bounded linear scan beats a second tree.
func (x *Index) CodingOverlaps(pos int64) []Interval {
	var hits []Interval
	for i := range x.coding {
		e := &x.coding[i]
		if e.Start > pos {
			break
		}
		if e.End >= pos {
			hits = append(hits, e.Interval)
		}
	}
	return hits
}

// CodingIntervals returns all coding-region intervals in index order.
func (x *Index) CodingIntervals() []Interval {
	out := make([]Interval, len(x.coding))
	for i, e := range x.coding {
		out[i] = e.Interval
	}
	return out
}

// Len returns the number of indexed intervals.
func (x *Index) Len() int {
	return len(x.intervals)
}
