package httpadapter

import "sync"

// recentCases is a bounded ring of the most recently ingested case IDs.
// When a question arrives without a case ID the handler falls back to the
// newest entry, so a client can upload a document and ask about it without
// threading the generated ID through.
type recentCases struct {
	mu  sync.Mutex
	ids []string
	cap int
}

func newRecentCases(capacity int) *recentCases {
	if capacity <= 0 {
		capacity = 10
	}
	return &recentCases{cap: capacity}
}

func (rc *recentCases) Remember(caseID string) {
	if caseID == "" {
		return
	}
	rc.mu.Lock()
	defer rc.mu.Unlock()

	for i, id := range rc.ids {
		if id == caseID {
			rc.ids = append(rc.ids[:i], rc.ids[i+1:]...)
			break
		}
	}
	rc.ids = append(rc.ids, caseID)
	if len(rc.ids) > rc.cap {
		rc.ids = rc.ids[len(rc.ids)-rc.cap:]
	}
}

// Latest returns the most recently remembered case ID, or "".
func (rc *recentCases) Latest() string {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	if len(rc.ids) == 0 {
		return ""
	}
	return rc.ids[len(rc.ids)-1]
}

// List returns the remembered IDs, newest first.
func (rc *recentCases) List() []string {
	rc.mu.Lock()
	defer rc.mu.Unlock()

	out := make([]string, 0, len(rc.ids))
	for i := len(rc.ids) - 1; i >= 0; i-- {
		out = append(out, rc.ids[i])
	}
	return out
}
