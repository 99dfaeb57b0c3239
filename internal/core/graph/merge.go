package graph

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/worawit/lawgraph/internal/core/domain"
	"github.com/worawit/lawgraph/internal/core/ports"
)

// Store runs the schema-aware merge and retrieval statements against the
// graph. Per-statement failures during an upsert are logged and skipped so
// one bad fragment never aborts a batch; re-running the same batch converges
// to the same graph.
type Store struct {
	graph ports.GraphCommander
	log   *slog.Logger
}

func NewStore(graph ports.GraphCommander, log *slog.Logger) *Store {
	return &Store{graph: graph, log: log}
}

type mappedNode struct {
	label    string
	name     string
	rawType  string
	roleHint string
}

// mapNode resolves the stored label for an extracted entity. Party names
// force the Person label and carry a role hint; labels outside the ontology
// collapse to Entity.
func mapNode(e *domain.Entity) mappedNode {
	name := e.Name
	label := e.Type
	if label == "" {
		label = "Entity"
	}

	var role string
	switch name {
	case "โจทก", "โจทก์":
		label = "Person"
		role = "Plaintiff"
	case "จำเลย":
		label = "Person"
		role = "Defendant"
	}

	raw := label
	if _, ok := allowedLabels[label]; !ok {
		label = "Entity"
	}
	return mappedNode{label: SanitizeLabel(label), name: name, rawType: raw, roleHint: role}
}

type nodeKey struct {
	label string
	name  string
}

type edge struct {
	srcLabel, srcName string
	relType           string
	dstLabel, dstName string
}

// Upsert merges the extraction results for one case into the graph. The
// case node is created first, then nodes, edges and the derived role and
// case-fact links, all with MERGE semantics keyed on canonical names.
func (s *Store) Upsert(ctx context.Context, caseID string, results []domain.ExtractionResult) error {
	if caseID == "" {
		return domain.WrapError(domain.ErrInvalidInput, "graph.upsert", fmt.Errorf("empty case id"))
	}

	var (
		nodeOrder []nodeKey
		nodes     = make(map[nodeKey]mappedNode)
		edges     []edge
		roles     []mappedNode
	)
	addNode := func(m mappedNode) {
		key := nodeKey{m.label, m.name}
		if _, ok := nodes[key]; !ok {
			nodes[key] = m
			nodeOrder = append(nodeOrder, key)
			if m.label == "Person" && m.roleHint != "" {
				roles = append(roles, m)
			}
		}
	}

	for _, res := range results {
		for _, e := range res.Entities {
			addNode(mapNode(e))
		}
		for _, r := range res.Relationships {
			src := mapNode(r.Source)
			dst := mapNode(r.Target)
			addNode(src)
			addNode(dst)
			edges = append(edges, edge{
				srcLabel: src.label, srcName: src.name,
				relType:  SanitizeRelType(r.Type),
				dstLabel: dst.label, dstName: dst.name,
			})
		}
	}

	err := s.graph.Write(ctx,
		"MERGE (c:CourtCase {caseId: $cid}) SET c.name = coalesce(c.name, $cid)",
		map[string]any{"cid": caseID})
	if err != nil {
		return domain.WrapError(domain.ErrTemporary, "graph.upsert case node", err)
	}

	for _, key := range nodeOrder {
		n := nodes[key]
		stmt := fmt.Sprintf("MERGE (n:`%s` {name: $name}) SET n += $props", n.label)
		props := map[string]any{"name": n.name, "original_type": n.rawType}
		if err := s.graph.Write(ctx, stmt, map[string]any{"name": n.name, "props": props}); err != nil {
			s.log.Warn("node upsert skipped", "label", n.label, "name", n.name, "error", err)
		}
	}

	for _, e := range edges {
		stmt := fmt.Sprintf(
			"MATCH (a:`%s` {name: $sname}), (b:`%s` {name: $tname}) MERGE (a)-[:`%s`]->(b)",
			e.srcLabel, e.dstLabel, e.relType)
		params := map[string]any{"sname": e.srcName, "tname": e.dstName}
		if err := s.graph.Write(ctx, stmt, params); err != nil {
			s.log.Warn("relationship upsert skipped",
				"src", e.srcName, "type", e.relType, "dst", e.dstName, "error", err)
		}
	}

	s.linkRoles(ctx, caseID, roles)
	s.linkCaseFacts(ctx, caseID, nodeOrder, nodes)
	return nil
}

// linkRoles materializes LegalRole nodes and ties the parties to the case.
// Plaintiffs additionally claim the case.
func (s *Store) linkRoles(ctx context.Context, caseID string, roles []mappedNode) {
	for _, r := range roles {
		run := func(stmt string, params map[string]any) {
			if err := s.graph.Write(ctx, stmt, params); err != nil {
				s.log.Warn("role link skipped", "person", r.name, "role", r.roleHint, "error", err)
			}
		}
		run("MERGE (r:LegalRole {value: $v, name: $v})",
			map[string]any{"v": r.roleHint})
		run("MATCH (p:Person {name: $p}), (r:LegalRole {value: $v}) MERGE (p)-[:HAS_ROLE]->(r)",
			map[string]any{"p": r.name, "v": r.roleHint})
		run("MATCH (p:Person {name: $p}), (c:CourtCase {caseId: $cid}) MERGE (p)-[:PARTY]->(c)",
			map[string]any{"p": r.name, "cid": caseID})
		if r.roleHint == "Plaintiff" {
			run("MATCH (p:Person {name: $p}), (c:CourtCase {caseId: $cid}) MERGE (p)-[:CLAIMS]->(c)",
				map[string]any{"p": r.name, "cid": caseID})
		}
	}
}

// linkCaseFacts attaches every distinct MoneyAmount and Date to the case so
// fact retrieval stays case-scoped.
func (s *Store) linkCaseFacts(ctx context.Context, caseID string, order []nodeKey, nodes map[nodeKey]mappedNode) {
	for _, key := range order {
		n := nodes[key]
		switch n.label {
		case "MoneyAmount":
			err := s.graph.Write(ctx,
				"MATCH (c:CourtCase {caseId: $cid}) MERGE (m:MoneyAmount {name: $m}) MERGE (c)-[:HAS_AMOUNT]->(m)",
				map[string]any{"cid": caseID, "m": n.name})
			if err != nil {
				s.log.Warn("case amount link skipped", "amount", n.name, "error", err)
			}
		case "Date":
			err := s.graph.Write(ctx,
				"MATCH (c:CourtCase {caseId: $cid}) MERGE (d:Date {name: $d}) MERGE (c)-[:OCCURRED_ON]->(d)",
				map[string]any{"cid": caseID, "d": n.name})
			if err != nil {
				s.log.Warn("case date link skipped", "date", n.name, "error", err)
			}
		}
	}
}
