package domain

// DocChunk is one unit of ingested source text. Page is the 1-based sequence
// number within a case; Section is the "มาตรา N" / "หมวด N" tag detected at
// index time, always a string and possibly empty.
type DocChunk struct {
	CaseID  string `json:"caseId"`
	ChunkID string `json:"chunkId"`
	Text    string `json:"text"`
	Page    int    `json:"page"`
	Section string `json:"section"`
}

// RankedChunk is a DocChunk with its retrieval score attached.
type RankedChunk struct {
	DocChunk
	Score float64 `json:"score"`
}

// IngestResult reports what an ingestion batch produced.
type IngestResult struct {
	CaseID     string `json:"case_id"`
	ChunkCount int    `json:"chunks"`
}

// SearchResult pairs ranked passages with structured graph facts. The two
// sides are independent; either may be empty without the other failing.
// Mode is "hybrid" when dense-embedding similarity contributed to the
// scores, "lexical" otherwise.
type SearchResult struct {
	Chunks []RankedChunk `json:"top_docs"`
	Facts  []CaseFact    `json:"facts"`
	Mode   string        `json:"mode"`
}

// Answer is the deterministic synthesis output plus its supporting evidence.
type Answer struct {
	Text   string        `json:"answer"`
	Chunks []RankedChunk `json:"doc_hits"`
	Facts  []CaseFact    `json:"facts"`
	Mode   string        `json:"mode"`
}
