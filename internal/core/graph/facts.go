package graph

import (
	"context"

	"github.com/worawit/lawgraph/internal/core/domain"
)

const caseFactsQuery = `
MATCH (c:CourtCase {caseId: $cid})
OPTIONAL MATCH (p:Person)-[:PARTY]->(c)
OPTIONAL MATCH (p)-[:HAS_ROLE]->(role:LegalRole)
OPTIONAL MATCH (c)-[:OCCURRED_ON]->(d:Date)
OPTIONAL MATCH (c)-[:HAS_AMOUNT]->(m:MoneyAmount)
OPTIONAL MATCH (sec:Section)-[:HAS_DESC]->(desc:Section_desc)
RETURN DISTINCT
    p.name AS person, role.value AS role, c.caseId AS caseId,
    d.name AS date, m.name AS amount,
    sec.name AS section, desc.name AS section_desc
LIMIT $limit`

const plaintiffAddressQuery = `
MATCH (c:CourtCase {caseId: $cid})
OPTIONAL MATCH (p:Person)-[:PARTY]->(c)
OPTIONAL MATCH (p)-[:HAS_ROLE]->(role:LegalRole)
OPTIONAL MATCH (p)-[:RESIDES_AT]->(addr:Address)
OPTIONAL MATCH (addr)-[:IN_SUBDISTRICT]->(sd:Subdistrict)
OPTIONAL MATCH (addr)-[:IN_DISTRICT]->(dist:District)
OPTIONAL MATCH (addr)-[:IN_PROVINCE]->(prov:Province)
OPTIONAL MATCH (addr)-[:HAS_POSTAL_CODE]->(pc:PostalCode)
WHERE p IS NOT NULL AND (role.value = 'Plaintiff' OR role.value IS NULL)
RETURN DISTINCT
    p.name AS person, role.value AS role, c.caseId AS caseId,
    NULL AS date, NULL AS amount,
    NULL AS section, NULL AS section_desc,
    addr.name AS address, sd.name AS subdistrict, dist.name AS district,
    prov.name AS province, pc.code AS postal_code
LIMIT 1`

const globalFactsQuery = `
MATCH (c:CourtCase)
OPTIONAL MATCH (p:Person)-[:PARTY]->(c)
OPTIONAL MATCH (p)-[:HAS_ROLE]->(role:LegalRole)
OPTIONAL MATCH (c)-[:OCCURRED_ON]->(d:Date)
OPTIONAL MATCH (c)-[:HAS_AMOUNT]->(m:MoneyAmount)
OPTIONAL MATCH (sec:Section)-[:HAS_DESC]->(desc:Section_desc)
RETURN DISTINCT
    p.name AS person, role.value AS role, c.caseId AS caseId,
    d.name AS date, m.name AS amount,
    sec.name AS section, desc.name AS section_desc
LIMIT $limit`

// Facts returns the distinct structured fact tuples for a case, or for the
// whole graph when caseID is empty. The case-scoped form appends one
// best-effort plaintiff address row; a failure there is logged, not
// surfaced.
func (s *Store) Facts(ctx context.Context, caseID string, limit int) ([]domain.CaseFact, error) {
	if limit <= 0 {
		limit = 20
	}

	if caseID == "" {
		rows, err := s.graph.Read(ctx, globalFactsQuery, map[string]any{"limit": limit})
		if err != nil {
			return nil, domain.WrapError(domain.ErrTemporary, "graph.facts", err)
		}
		return factsFromRows(rows), nil
	}

	rows, err := s.graph.Read(ctx, caseFactsQuery, map[string]any{"cid": caseID, "limit": limit})
	if err != nil {
		return nil, domain.WrapError(domain.ErrTemporary, "graph.facts", err)
	}
	facts := factsFromRows(rows)

	addrRows, err := s.graph.Read(ctx, plaintiffAddressQuery, map[string]any{"cid": caseID})
	if err != nil {
		s.log.Warn("plaintiff address lookup skipped", "caseId", caseID, "error", err)
		return facts, nil
	}
	return append(facts, factsFromRows(addrRows)...), nil
}

func factsFromRows(rows []map[string]any) []domain.CaseFact {
	facts := make([]domain.CaseFact, 0, len(rows))
	for _, row := range rows {
		facts = append(facts, domain.CaseFact{
			Person:      rowString(row, "person"),
			Role:        rowString(row, "role"),
			CaseID:      rowString(row, "caseId"),
			Date:        rowString(row, "date"),
			Amount:      rowString(row, "amount"),
			Section:     rowString(row, "section"),
			SectionDesc: rowString(row, "section_desc"),
			Address:     rowString(row, "address"),
			Subdistrict: rowString(row, "subdistrict"),
			District:    rowString(row, "district"),
			Province:    rowString(row, "province"),
			PostalCode:  rowString(row, "postal_code"),
		})
	}
	return facts
}

func rowString(row map[string]any, key string) string {
	if v, ok := row[key].(string); ok {
		return v
	}
	return ""
}
