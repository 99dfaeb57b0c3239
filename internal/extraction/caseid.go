package extraction

import (
	"crypto/sha1"
	"encoding/hex"
	"regexp"
	"strings"

	"github.com/worawit/lawgraph/internal/thai"
)

// Ordered from most to least specific docket phrasing. The catch-all NN/YYYY
// form must stay last.
var caseIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`คดีหมายเลข[ดำแดง]?\s*(ที่)?\s*([0-9/\-]+)`),
	regexp.MustCompile(`หมายเลขคดี\s*([0-9/\-]+)`),
	regexp.MustCompile(`คดี.*?([0-9]+/[0-9]+)`),
}

// DetectCaseID scans the texts in order for a docket number and returns the
// canonical "CASE-<number>" identifier. When no pattern matches anywhere, the
// identifier is derived from a content hash so the same batch always maps to
// the same case.
func DetectCaseID(texts []string) string {
	for _, text := range texts {
		s := thai.NormalizeDigits(text)
		for _, re := range caseIDPatterns {
			m := re.FindStringSubmatch(s)
			if m == nil {
				continue
			}
			for i := len(m) - 1; i >= 1; i-- {
				if m[i] != "" {
					return "CASE-" + stripSpaces(m[i])
				}
			}
		}
	}

	sum := sha1.Sum([]byte(strings.Join(texts, "\n")))
	return "CASE-" + hex.EncodeToString(sum[:])[:10]
}

func stripSpaces(s string) string {
	return strings.Join(strings.Fields(s), "")
}
