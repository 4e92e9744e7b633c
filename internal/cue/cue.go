// Package cue defines the subtitle cue model and the group bookkeeping that
// distinguishes manually retimed cues from auto-flowed ones.
package cue

import (
	"sort"
	"strings"
)

// Cue is one timed caption block. GroupID ties together fragments that,
// concatenated in start order, reconstruct a single user-edited text unit;
// nil means the cue was never split from a larger unit.
type Cue struct {
	Start   float64 `json:"start"`
	End     float64 `json:"end"`
	Text    string  `json:"text"`
	GroupID *int64  `json:"group_id,omitempty"`
}

// Duration returns the cue's span in seconds.
func (c Cue) Duration() float64 {
	return c.End - c.Start
}

// WithGroup returns a copy of the cue carrying the given group ID.
func (c Cue) WithGroup(id int64) Cue {
	c.GroupID = &id
	return c
}

// SortByStart orders cues by start time, in place and stably.
func SortByStart(cues []Cue) {
	sort.SliceStable(cues, func(i, j int) bool {
		return cues[i].Start < cues[j].Start
	})
}

// GroupSet tracks which group IDs the user has manually retimed. Cues in a
// manual group keep their boundaries as-is; everything else is re-derived
// from word timings.
type GroupSet map[int64]struct{}

// NewGroupSet builds a set from a list of IDs.
func NewGroupSet(ids []int64) GroupSet {
	set := make(GroupSet, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

// Add marks a group as manual.
func (s GroupSet) Add(id int64) {
	s[id] = struct{}{}
}

// Contains reports whether the cue's group is manual. Ungrouped cues are
// never manual.
func (s GroupSet) Contains(c Cue) bool {
	if c.GroupID == nil {
		return false
	}
	_, ok := s[*c.GroupID]
	return ok
}

// IDs returns the sorted member IDs.
func (s GroupSet) IDs() []int64 {
	ids := make([]int64, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// boundaryTolerance is how far a cue edge may drift between revisions before
// the edit counts as a manual retiming.
const boundaryTolerance = 0.001

// DetectManualGroups extends manual with every group whose fragments changed
// count or whose boundaries moved between the previous and current revision.
// The updated set is returned; manual may be nil.
func DetectManualGroups(previous, current []Cue, manual GroupSet) GroupSet {
	if manual == nil {
		manual = make(GroupSet)
	}

	previousGroups := groupFragments(previous)
	for id, fragments := range groupFragments(current) {
		prevFragments, ok := previousGroups[id]
		if !ok {
			continue
		}
		if len(fragments) != len(prevFragments) {
			manual.Add(id)
			continue
		}
		for i, fragment := range fragments {
			prev := prevFragments[i]
			if abs(fragment.Start-prev.Start) > boundaryTolerance ||
				abs(fragment.End-prev.End) > boundaryTolerance {
				manual.Add(id)
				break
			}
		}
	}
	return manual
}

// MergeByGroup collapses fragments sharing a group ID into one cue per group:
// text concatenated in start order, interval spanning first start to last
// end. Ungrouped cues pass through untouched. Output is ordered by start.
func MergeByGroup(cues []Cue) []Cue {
	var merged []Cue
	seen := make(map[int64]int)

	ordered := make([]Cue, len(cues))
	copy(ordered, cues)
	SortByStart(ordered)

	for _, c := range ordered {
		if c.GroupID == nil {
			merged = append(merged, c)
			continue
		}
		id := *c.GroupID
		if idx, ok := seen[id]; ok {
			target := &merged[idx]
			target.Text = strings.TrimSpace(target.Text + " " + c.Text)
			if c.End > target.End {
				target.End = c.End
			}
			continue
		}
		seen[id] = len(merged)
		copied := c
		copied.Text = strings.TrimSpace(copied.Text)
		merged = append(merged, copied)
	}

	SortByStart(merged)
	return merged
}

func groupFragments(cues []Cue) map[int64][]Cue {
	grouped := make(map[int64][]Cue)
	for _, c := range cues {
		if c.GroupID == nil {
			continue
		}
		grouped[*c.GroupID] = append(grouped[*c.GroupID], c)
	}
	for id := range grouped {
		SortByStart(grouped[id])
	}
	return grouped
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
