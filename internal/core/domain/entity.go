package domain

// Entity is a typed, named element of the legal knowledge graph. Name is the
// natural key (a normalized name or label text), Type the semantic label
// before ontology mapping.
type Entity struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// Relationship is a directed, typed edge between two extracted entities.
type Relationship struct {
	Source *Entity `json:"source"`
	Target *Entity `json:"target"`
	Type   string  `json:"type"`
}

// ExtractionResult holds the graph fragment produced from one text chunk.
// Repeated mentions of the same (name, type) pair collapse to one Entity
// instance during extraction, so pointer identity is meaningful within a
// single result.
type ExtractionResult struct {
	Entities      []*Entity      `json:"entities"`
	Relationships []Relationship `json:"relationships"`
}
