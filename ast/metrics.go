package ast

import (
	"fmt"
	"sort"
	"strings"
)

// Counters is an in-memory core.MetricsSink. The embedding driver
// aggregates one per file-processing unit; nothing here is safe for
// concurrent use, matching the single-worker ownership of a tree.
type Counters struct {
	categories map[string]map[string]uint64
	histograms map[string]map[int]uint64
}

// NewCounters returns an empty sink.
func NewCounters() *Counters {
	return &Counters{
		categories: make(map[string]map[string]uint64),
		histograms: make(map[string]map[int]uint64),
	}
}

func (c *Counters) CategoryCounterInc(category, name string) {
	m := c.categories[category]
	if m == nil {
		m = make(map[string]uint64)
		c.categories[category] = m
	}
	m[name]++
}

func (c *Counters) HistogramInc(histogram string, value int) {
	m := c.histograms[histogram]
	if m == nil {
		m = make(map[int]uint64)
		c.histograms[histogram] = m
	}
	m[value]++
}

// Counter reads one category counter.
func (c *Counters) Counter(category, name string) uint64 {
	return c.categories[category][name]
}

// String renders all counters sorted, for debug output.
func (c *Counters) String() string {
	var buf strings.Builder
	cats := make([]string, 0, len(c.categories))
	for cat := range c.categories {
		cats = append(cats, cat)
	}
	sort.Strings(cats)
	for _, cat := range cats {
		names := make([]string, 0, len(c.categories[cat]))
		for name := range c.categories[cat] {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(&buf, "%s.%s = %d\n", cat, name, c.categories[cat][name])
		}
	}
	return buf.String()
}
