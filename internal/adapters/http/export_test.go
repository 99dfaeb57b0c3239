package httpadapter

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/worawit/lawgraph/internal/core/domain"
)

func TestFactsWorkbookRows(t *testing.T) {
	wb, err := factsWorkbook("CASE-1", []domain.CaseFact{
		{Person: "สมชาย ใจดี", Role: "Plaintiff", Amount: "10,000", Section: "มาตรา 145"},
		{Date: "2014-11-01"},
	})
	if err != nil {
		t.Fatalf("factsWorkbook() error = %v", err)
	}
	defer wb.Close()

	rows, err := wb.GetRows(factsSheet)
	if err != nil {
		t.Fatalf("GetRows() error = %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d", len(rows))
	}
	if rows[0][0] != "Person" {
		t.Fatalf("unexpected header: %v", rows[0])
	}
	if rows[1][0] != "สมชาย ใจดี" || rows[1][1] != "Plaintiff" || rows[1][2] != "CASE-1" {
		t.Fatalf("unexpected first row: %v", rows[1])
	}
	if rows[2][3] != "2014-11-01" {
		t.Fatalf("unexpected second row: %v", rows[2])
	}
}

func TestExportCaseFactsEndpoint(t *testing.T) {
	deps := &testDeps{facts: &fakeFactReader{facts: []domain.CaseFact{
		{Person: "สมชาย ใจดี", Role: "Plaintiff", CaseID: "CASE-1"},
	}}}
	handler := newTestRouter(deps, Config{})

	req := httptest.NewRequest(http.MethodGet, "/v1/cases/CASE-1/facts/export", nil)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", res.Code, res.Body.String())
	}
	if !strings.Contains(res.Header().Get("Content-Disposition"), "CASE-1-facts.xlsx") {
		t.Fatalf("unexpected disposition: %q", res.Header().Get("Content-Disposition"))
	}

	wb, err := excelize.OpenReader(bytes.NewReader(res.Body.Bytes()))
	if err != nil {
		t.Fatalf("open exported workbook: %v", err)
	}
	defer wb.Close()

	rows, err := wb.GetRows(factsSheet)
	if err != nil {
		t.Fatalf("GetRows() error = %v", err)
	}
	if len(rows) != 2 || rows[1][0] != "สมชาย ใจดี" {
		t.Fatalf("unexpected workbook rows: %v", rows)
	}
}
