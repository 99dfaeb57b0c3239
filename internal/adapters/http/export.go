package httpadapter

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/worawit/lawgraph/internal/core/domain"
)

const factsSheet = "Facts"

var factsHeader = []any{
	"Person", "Role", "Case", "Date", "Amount",
	"Section", "Section Description",
	"Address", "Subdistrict", "District", "Province", "Postal Code",
}

// factsWorkbook renders case facts as a single-sheet spreadsheet, one fact
// tuple per row under a header row.
func factsWorkbook(caseID string, facts []domain.CaseFact) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", factsSheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	if err := f.SetSheetRow(factsSheet, "A1", &factsHeader); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}

	for i, fact := range facts {
		cid := fact.CaseID
		if cid == "" {
			cid = caseID
		}
		row := []any{
			fact.Person, fact.Role, cid, fact.Date, fact.Amount,
			fact.Section, fact.SectionDesc,
			fact.Address, fact.Subdistrict, fact.District, fact.Province, fact.PostalCode,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("row coordinates: %w", err)
		}
		if err := f.SetSheetRow(factsSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+2, err)
		}
	}
	return f, nil
}
