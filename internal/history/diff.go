package history

import (
	"github.com/sergi/go-diff/diffmatchpatch"
)

// ChangeSegment is one run of a bio diff. Op is "equal", "insert" or
// "delete"; insert/delete are relative to the older bio.
type ChangeSegment struct {
	Op   string `json:"op"`
	Text string `json:"text"`
}

// BioChange describes how a profile's bio moved between the two most recent
// scans of the same URL.
type BioChange struct {
	URL      string          `json:"url"`
	Previous string          `json:"previous"`
	Current  string          `json:"current"`
	Changed  bool            `json:"changed"`
	Segments []ChangeSegment `json:"segments"`
}

// BioChanges diffs the recorded bios of the two most recent scans of url.
// The second return value is false when the log holds fewer than two scans
// of that URL with profile data attached.
func (s *Store) BioChanges(url string) (*BioChange, bool) {
	s.mu.Lock()
	var current, previous string
	found := 0
	for _, e := range s.entries { // most-recent-first
		if e.URL != url || e.ProfileData == nil {
			continue
		}
		switch found {
		case 0:
			current = e.ProfileData.Bio
		case 1:
			previous = e.ProfileData.Bio
		}
		found++
		if found == 2 {
			break
		}
	}
	s.mu.Unlock()

	if found < 2 {
		return nil, false
	}

	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(previous, current, false)
	diffs = dmp.DiffCleanupSemantic(diffs)

	change := &BioChange{
		URL:      url,
		Previous: previous,
		Current:  current,
		Changed:  previous != current,
	}
	for _, d := range diffs {
		seg := ChangeSegment{Text: d.Text}
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			seg.Op = "insert"
		case diffmatchpatch.DiffDelete:
			seg.Op = "delete"
		default:
			seg.Op = "equal"
		}
		change.Segments = append(change.Segments, seg)
	}
	return change, true
}
