// Package graph owns the knowledge-graph schema: label and relationship
// sanitization, the merge statements that keep ingestion idempotent, the
// uniqueness constraints, and the fact-retrieval queries. It talks to the
// store only through ports.GraphCommander.
package graph

import (
	"regexp"
	"strings"
)

// allowedLabels is the closed ontology. Anything outside it is stored as
// the generic Entity label.
var allowedLabels = map[string]struct{}{
	"Person": {}, "Company": {}, "CourtCase": {},
	"EmploymentContract": {}, "Position": {},
	"MoneyAmount": {}, "Date": {},
	"LegalRole": {}, "LegalTerm": {},
	"Act": {}, "Book": {}, "Title": {}, "Chapter": {}, "Part": {},
	"Group": {}, "Section": {}, "Section_desc": {},
	"Paragraph": {}, "InterestRate": {}, "Penalty": {}, "TimePeriod": {}, "Cause": {},
	"Address": {}, "Province": {}, "District": {}, "Subdistrict": {}, "PostalCode": {}, "PhoneNumber": {},
	"Entity": {},
}

var (
	labelBadRe = regexp.MustCompile(`[^A-Za-z0-9_]`)
	relBadRe   = regexp.MustCompile(`[^A-Z0-9_]`)
)

// SanitizeLabel coerces an arbitrary string into a label safe to splice
// into a statement. Labels are always backtick-quoted as well; this is the
// second line of defense.
func SanitizeLabel(label string) string {
	if label == "" {
		label = "Entity"
	}
	label = labelBadRe.ReplaceAllString(label, "_")
	if label == "" {
		return "Entity"
	}
	if label[0] >= '0' && label[0] <= '9' {
		label = "_" + label
	}
	return label
}

// SanitizeRelType upper-cases and coerces a relationship type the same way.
func SanitizeRelType(rtype string) string {
	if rtype == "" {
		rtype = "RELATES_TO"
	}
	rtype = relBadRe.ReplaceAllString(strings.ToUpper(rtype), "_")
	if rtype == "" {
		return "RELATES_TO"
	}
	if rtype[0] >= '0' && rtype[0] <= '9' {
		rtype = "R_" + rtype
	}
	return rtype
}
