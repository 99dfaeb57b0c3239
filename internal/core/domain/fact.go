package domain

// CaseFact is one distinct tuple of structured graph facts for a case.
// Fields are empty strings when the corresponding node is absent. The
// address fields are only populated by the best-effort plaintiff enrichment
// row.
type CaseFact struct {
	Person      string `json:"person,omitempty"`
	Role        string `json:"role,omitempty"`
	CaseID      string `json:"caseId,omitempty"`
	Date        string `json:"date,omitempty"`
	Amount      string `json:"amount,omitempty"`
	Section     string `json:"section,omitempty"`
	SectionDesc string `json:"section_desc,omitempty"`

	Address     string `json:"address,omitempty"`
	Subdistrict string `json:"subdistrict,omitempty"`
	District    string `json:"district,omitempty"`
	Province    string `json:"province,omitempty"`
	PostalCode  string `json:"postal_code,omitempty"`
}
