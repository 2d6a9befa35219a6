// Package batch implements subdivision generation: distributing a
// building-type mix over a target count and laying the result out as a
// collision-free grid anchored at a chosen origin.
package batch

import (
	"math"

	"github.com/EVAnunit1307/citysync/pkg/building"
)

// Mix is the percentage split of building types within a batch.
// A well-formed mix sums to 100; mixes that do not are absorbed by the
// rounding-drift correction in Distribute rather than rejected.
type Mix struct {
	DetachedPct  int `yaml:"detached_pct" json:"detached_pct"`
	TownhousePct int `yaml:"townhouse_pct" json:"townhouse_pct"`
	MidrisePct   int `yaml:"midrise_pct" json:"midrise_pct"`
}

// Sum returns the raw percentage total.
func (m Mix) Sum() int {
	return m.DetachedPct + m.TownhousePct + m.MidrisePct
}

// Counts holds exact per-type building counts.
type Counts struct {
	Detached  int `json:"detached"`
	Townhouse int `json:"townhouse"`
	Midrise   int `json:"midrise"`
}

// Total returns the summed count.
func (c Counts) Total() int {
	return c.Detached + c.Townhouse + c.Midrise
}

// ByType returns the count for a type.
func (c Counts) ByType(t building.Type) int {
	switch t {
	case building.Detached:
		return c.Detached
	case building.Townhouse:
		return c.Townhouse
	case building.Midrise:
		return c.Midrise
	}
	return 0
}

// Distribute turns a target count and a percentage mix into exact integer
// counts that always sum to total. Each percentage is scaled and rounded
// to nearest; rounding drift is settled against whichever bucket is
// currently largest (ties break in enumeration order: detached,
// townhouse, midrise). A mix where every bucket rounds to zero assigns
// the whole total to detached.
func Distribute(total int, mix Mix) Counts {
	if total <= 0 {
		return Counts{}
	}

	c := Counts{
		Detached:  roundShare(mix.DetachedPct, total),
		Townhouse: roundShare(mix.TownhousePct, total),
		Midrise:   roundShare(mix.MidrisePct, total),
	}
	if c.Detached == 0 && c.Townhouse == 0 && c.Midrise == 0 {
		return Counts{Detached: total}
	}

	buckets := [3]*int{&c.Detached, &c.Townhouse, &c.Midrise}
	for diff := total - c.Total(); diff != 0; diff = total - c.Total() {
		largest := buckets[0]
		for _, b := range buckets[1:] {
			if *b > *largest {
				largest = b
			}
		}
		if diff > 0 {
			*largest += diff
			break
		}
		// Shrinking: never push a bucket below zero.
		take := -diff
		if take > *largest {
			take = *largest
		}
		if take == 0 {
			break
		}
		*largest -= take
	}
	return c
}

func roundShare(pct, total int) int {
	n := int(math.Round(float64(pct) * float64(total) / 100))
	if n < 0 {
		return 0
	}
	return n
}

// PlanEntry is one line of a free-form build plan: a type and how many
// of it, as assembled by UI flows that work by type rather than by
// percentage.
type PlanEntry struct {
	Type  building.Type `yaml:"type" json:"type"`
	Count int           `yaml:"count" json:"count"`
}

// NormalizeMix converts a plan into an equivalent percentage mix and
// total, with the same largest-bucket drift correction so the
// percentages always sum to exactly 100 for a non-empty plan.
func NormalizeMix(plan []PlanEntry) (Mix, int) {
	counts := Counts{}
	for _, e := range plan {
		if e.Count <= 0 {
			continue
		}
		switch e.Type {
		case building.Detached:
			counts.Detached += e.Count
		case building.Townhouse:
			counts.Townhouse += e.Count
		case building.Midrise:
			counts.Midrise += e.Count
		}
	}
	total := counts.Total()
	if total == 0 {
		return Mix{}, 0
	}

	var m Mix
	m.DetachedPct = roundPct(counts.Detached, total)
	m.TownhousePct = roundPct(counts.Townhouse, total)
	m.MidrisePct = roundPct(counts.Midrise, total)

	buckets := [3]*int{&m.DetachedPct, &m.TownhousePct, &m.MidrisePct}
	for diff := 100 - m.Sum(); diff != 0; diff = 100 - m.Sum() {
		largest := buckets[0]
		for _, b := range buckets[1:] {
			if *b > *largest {
				largest = b
			}
		}
		if diff > 0 {
			*largest += diff
			break
		}
		take := -diff
		if take > *largest {
			take = *largest
		}
		if take == 0 {
			break
		}
		*largest -= take
	}
	return m, total
}

func roundPct(count, total int) int {
	return int(math.Round(float64(count) * 100 / float64(total)))
}
