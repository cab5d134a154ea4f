// Package impact holds the per-state reach figures shown on the public
// impact map.
package impact

import (
	"math"
	"strings"
)

const FCT = "FCT Abuja"

type Region struct {
	Name     string `json:"name"`
	Reach    int    `json:"reach"` // communities
	Teachers int    `json:"teachers"`
	Learners int    `json:"learners"`
	Programs int    `json:"programs"`
}

var regions = []Region{
	{Name: FCT, Reach: 15, Teachers: 42, Learners: 680},
	{Name: "Kano", Reach: 24, Teachers: 78, Learners: 1200},
	{Name: "Lagos", Reach: 18, Teachers: 60, Learners: 950},
	{Name: "Bayelsa", Reach: 9, Teachers: 21, Learners: 310},
	{Name: "Kaduna", Reach: 14, Teachers: 39, Learners: 720},
	{Name: "Borno", Reach: 8, Teachers: 17, Learners: 280},
	{Name: "Zamfara", Reach: 7, Teachers: 16, Learners: 240},
	{Name: "Katsina", Reach: 11, Teachers: 28, Learners: 430},
	{Name: "Rivers", Reach: 10, Teachers: 26, Learners: 410},
	{Name: "Oyo", Reach: 12, Teachers: 33, Learners: 500},
}

var canonical = func() map[string]string {
	m := make(map[string]string, len(regions))
	for _, r := range regions {
		if r.Name != FCT {
			m[strings.ToLower(r.Name)] = r.Name
		}
	}
	return m
}()

// NormalizeRegion maps the many spellings map shapes use for a state onto
// the names in the dataset. Unknown names come back trimmed.
func NormalizeRegion(raw string) string {
	name := strings.TrimSpace(raw)
	lower := strings.ToLower(name)
	switch {
	case name == "":
		return ""
	case lower == "fct", lower == "f.c.t.", lower == "f.c.t abuja",
		strings.Contains(lower, "federal capital"), strings.Contains(lower, "abuja"):
		return FCT
	}
	if c, ok := canonical[lower]; ok {
		return c
	}
	return name
}

// programs estimates running programmes at one per twenty teachers, never
// fewer than one.
func programs(teachers int) int {
	return max(1, int(math.Round(float64(teachers)/20)))
}

// Regions returns a copy of the dataset in display order.
func Regions() []Region {
	out := make([]Region, len(regions))
	for i, r := range regions {
		r.Programs = programs(r.Teachers)
		out[i] = r
	}
	return out
}

// Lookup normalizes name and returns the matching region.
func Lookup(name string) (Region, bool) {
	n := NormalizeRegion(name)
	for _, r := range Regions() {
		if r.Name == n {
			return r, true
		}
	}
	return Region{}, false
}

// Totals sums the dataset.
func Totals() Region {
	t := Region{Name: "Nigeria"}
	for _, r := range Regions() {
		t.Reach += r.Reach
		t.Teachers += r.Teachers
		t.Learners += r.Learners
		t.Programs += r.Programs
	}
	return t
}
