package httpadapter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/worawit/lawgraph/internal/core/domain"
	"github.com/worawit/lawgraph/internal/observability/metrics"
)

type fakeIngestor struct {
	gotTexts  []string
	gotCaseID string
	result    *domain.IngestResult
	err       error
}

func (f *fakeIngestor) Ingest(_ context.Context, texts []string, caseID string) (*domain.IngestResult, error) {
	f.gotTexts = texts
	f.gotCaseID = caseID
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

type fakeSearcher struct {
	gotQuery  string
	gotCaseID string
	gotK      int
	result    *domain.SearchResult
	err       error
}

func (f *fakeSearcher) Search(_ context.Context, query, caseID string, k int) (*domain.SearchResult, error) {
	f.gotQuery = query
	f.gotCaseID = caseID
	f.gotK = k
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

type fakeAnswerer struct {
	gotQuestion string
	gotCaseID   string
	gotK        int
	answer      *domain.Answer
	err         error
}

func (f *fakeAnswerer) Ask(_ context.Context, question, caseID string, k int) (*domain.Answer, error) {
	f.gotQuestion = question
	f.gotCaseID = caseID
	f.gotK = k
	if f.err != nil {
		return nil, f.err
	}
	return f.answer, nil
}

type fakeFactReader struct {
	gotCaseID string
	gotLimit  int
	facts     []domain.CaseFact
	err       error
}

func (f *fakeFactReader) Facts(_ context.Context, caseID string, limit int) ([]domain.CaseFact, error) {
	f.gotCaseID = caseID
	f.gotLimit = limit
	return f.facts, f.err
}

type fakeChunkReader struct {
	gotCaseID string
	chunks    []domain.DocChunk
	err       error
}

func (f *fakeChunkReader) Chunks(_ context.Context, caseID string) ([]domain.DocChunk, error) {
	f.gotCaseID = caseID
	return f.chunks, f.err
}

type fakeExtractor struct {
	gotFilename string
	text        string
	err         error
}

func (f *fakeExtractor) Extract(_ context.Context, filename string, body io.Reader) (string, error) {
	f.gotFilename = filename
	_, _ = io.Copy(io.Discard, body)
	return f.text, f.err
}

type fakeChunker struct {
	chunks []string
}

func (f *fakeChunker) Split(string) []string {
	return f.chunks
}

type testDeps struct {
	ingest  *fakeIngestor
	search  *fakeSearcher
	ask     *fakeAnswerer
	facts   *fakeFactReader
	chunks  *fakeChunkReader
	extract *fakeExtractor
	split   *fakeChunker
}

func newTestRouter(deps *testDeps, cfg Config) http.Handler {
	if deps.ingest == nil {
		deps.ingest = &fakeIngestor{result: &domain.IngestResult{CaseID: "CASE-77", ChunkCount: 1}}
	}
	if deps.search == nil {
		deps.search = &fakeSearcher{result: &domain.SearchResult{}}
	}
	if deps.ask == nil {
		deps.ask = &fakeAnswerer{answer: &domain.Answer{Text: "ok"}}
	}
	if deps.facts == nil {
		deps.facts = &fakeFactReader{}
	}
	if deps.chunks == nil {
		deps.chunks = &fakeChunkReader{}
	}
	if deps.extract == nil {
		deps.extract = &fakeExtractor{text: "มาตรา 145"}
	}
	if deps.split == nil {
		deps.split = &fakeChunker{chunks: []string{"มาตรา 145"}}
	}
	rt := NewRouter(
		deps.ingest, deps.search, deps.ask, deps.facts, deps.chunks,
		deps.extract, deps.split,
		metrics.NewHTTPServerMetrics("test"), cfg,
	)
	return rt.Handler()
}

func doJSON(t *testing.T, handler http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request: %v", err)
		}
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)
	return res
}

func TestHealthz(t *testing.T) {
	handler := newTestRouter(&testDeps{}, Config{})
	res := doJSON(t, handler, http.MethodGet, "/healthz", nil)
	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.Code)
	}
}

func TestIngestTexts(t *testing.T) {
	deps := &testDeps{ingest: &fakeIngestor{result: &domain.IngestResult{CaseID: "CASE-123/2560", ChunkCount: 2}}}
	handler := newTestRouter(deps, Config{})

	res := doJSON(t, handler, http.MethodPost, "/v1/ingest", map[string]any{
		"texts":   []string{"โจทก์ฟ้องว่า", "มาตรา 145"},
		"case_id": "CASE-123/2560",
	})
	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", res.Code, res.Body.String())
	}
	if deps.ingest.gotCaseID != "CASE-123/2560" || len(deps.ingest.gotTexts) != 2 {
		t.Fatalf("use case received %q %v", deps.ingest.gotCaseID, deps.ingest.gotTexts)
	}

	var result domain.IngestResult
	if err := json.Unmarshal(res.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if result.CaseID != "CASE-123/2560" || result.ChunkCount != 2 {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestIngestInvalidJSON(t *testing.T) {
	handler := newTestRouter(&testDeps{}, Config{})
	req := httptest.NewRequest(http.MethodPost, "/v1/ingest", strings.NewReader("{not json"))
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)
	if res.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", res.Code)
	}
}

func TestIngestErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"invalid input", domain.WrapError(domain.ErrInvalidInput, "ingest case", errors.New("no texts")), http.StatusBadRequest},
		{"temporary", domain.WrapError(domain.ErrTemporary, "upsert graph", errors.New("neo4j down")), http.StatusServiceUnavailable},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := newTestRouter(&testDeps{ingest: &fakeIngestor{err: tt.err}}, Config{})
			res := doJSON(t, handler, http.MethodPost, "/v1/ingest", map[string]any{"texts": []string{"x"}})
			if res.Code != tt.want {
				t.Fatalf("expected %d, got %d", tt.want, res.Code)
			}
			var payload map[string]string
			if err := json.Unmarshal(res.Body.Bytes(), &payload); err != nil {
				t.Fatalf("decode error body: %v", err)
			}
			if payload["error"] == "" {
				t.Fatal("expected error message in body")
			}
		})
	}
}

func TestIngestFileMultipart(t *testing.T) {
	deps := &testDeps{
		ingest:  &fakeIngestor{result: &domain.IngestResult{CaseID: "CASE-9", ChunkCount: 2}},
		extract: &fakeExtractor{text: "มาตรา 145 และ มาตรา 146"},
		split:   &fakeChunker{chunks: []string{"มาตรา 145", "มาตรา 146"}},
	}
	handler := newTestRouter(deps, Config{})

	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)
	part, err := form.CreateFormFile("file", "คำฟ้อง.pdf")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	_, _ = part.Write([]byte("%PDF-1.4 ..."))
	if err := form.WriteField("case_id", "CASE-9"); err != nil {
		t.Fatalf("write field: %v", err)
	}
	form.Close()

	req := httptest.NewRequest(http.MethodPost, "/v1/ingest/file", &buf)
	req.Header.Set("Content-Type", form.FormDataContentType())
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", res.Code, res.Body.String())
	}
	if deps.extract.gotFilename != "คำฟ้อง.pdf" {
		t.Fatalf("extractor got filename %q", deps.extract.gotFilename)
	}
	if len(deps.ingest.gotTexts) != 2 || deps.ingest.gotCaseID != "CASE-9" {
		t.Fatalf("ingest received %q %v", deps.ingest.gotCaseID, deps.ingest.gotTexts)
	}
}

func TestIngestFileMissingFileField(t *testing.T) {
	handler := newTestRouter(&testDeps{}, Config{})
	res := doJSON(t, handler, http.MethodPost, "/v1/ingest/file", map[string]string{"x": "y"})
	if res.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", res.Code)
	}
}

func TestAskDefaultsToMostRecentCase(t *testing.T) {
	deps := &testDeps{
		ingest: &fakeIngestor{result: &domain.IngestResult{CaseID: "CASE-77", ChunkCount: 1}},
		ask:    &fakeAnswerer{answer: &domain.Answer{Text: "คำตอบ"}},
	}
	handler := newTestRouter(deps, Config{DefaultTopK: 4})

	if res := doJSON(t, handler, http.MethodPost, "/v1/ingest", map[string]any{"texts": []string{"x"}}); res.Code != http.StatusOK {
		t.Fatalf("ingest failed: %d", res.Code)
	}

	res := doJSON(t, handler, http.MethodPost, "/v1/ask", map[string]any{"question": "โจทก์คือใคร"})
	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.Code)
	}
	if deps.ask.gotCaseID != "CASE-77" {
		t.Fatalf("expected fallback to most recent case, got %q", deps.ask.gotCaseID)
	}
	if deps.ask.gotK != 4 {
		t.Fatalf("expected default k=4, got %d", deps.ask.gotK)
	}
}

func TestAskExplicitCaseWins(t *testing.T) {
	deps := &testDeps{ask: &fakeAnswerer{answer: &domain.Answer{}}}
	handler := newTestRouter(deps, Config{})

	res := doJSON(t, handler, http.MethodPost, "/v1/ask", map[string]any{
		"question": "ดอกเบี้ยเท่าไร",
		"case_id":  "CASE-5",
		"k":        3,
	})
	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.Code)
	}
	if deps.ask.gotCaseID != "CASE-5" || deps.ask.gotK != 3 {
		t.Fatalf("ask received %q k=%d", deps.ask.gotCaseID, deps.ask.gotK)
	}
}

func TestAskMissingQuestion(t *testing.T) {
	handler := newTestRouter(&testDeps{}, Config{})
	res := doJSON(t, handler, http.MethodPost, "/v1/ask", map[string]any{"question": "   "})
	if res.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", res.Code)
	}
}

func TestSearch(t *testing.T) {
	deps := &testDeps{search: &fakeSearcher{result: &domain.SearchResult{
		Chunks: []domain.RankedChunk{{DocChunk: domain.DocChunk{CaseID: "CASE-1", Page: 1}, Score: 0.9}},
	}}}
	handler := newTestRouter(deps, Config{})

	res := doJSON(t, handler, http.MethodGet, "/v1/search?q=ค่าจ้าง&case_id=CASE-1&k=2", nil)
	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.Code)
	}
	if deps.search.gotQuery != "ค่าจ้าง" || deps.search.gotCaseID != "CASE-1" || deps.search.gotK != 2 {
		t.Fatalf("search received %q %q k=%d", deps.search.gotQuery, deps.search.gotCaseID, deps.search.gotK)
	}
}

func TestSearchValidation(t *testing.T) {
	handler := newTestRouter(&testDeps{}, Config{})

	if res := doJSON(t, handler, http.MethodGet, "/v1/search", nil); res.Code != http.StatusBadRequest {
		t.Fatalf("missing q: expected 400, got %d", res.Code)
	}
	if res := doJSON(t, handler, http.MethodGet, "/v1/search?q=x&k=abc", nil); res.Code != http.StatusBadRequest {
		t.Fatalf("bad k: expected 400, got %d", res.Code)
	}
	if res := doJSON(t, handler, http.MethodGet, "/v1/search?q=x&k=-1", nil); res.Code != http.StatusBadRequest {
		t.Fatalf("negative k: expected 400, got %d", res.Code)
	}
}

func TestCaseFacts(t *testing.T) {
	deps := &testDeps{facts: &fakeFactReader{facts: []domain.CaseFact{
		{Person: "สมชาย ใจดี", Role: "Plaintiff", Section: "มาตรา 145"},
	}}}
	handler := newTestRouter(deps, Config{})

	res := doJSON(t, handler, http.MethodGet, "/v1/cases/CASE-1/facts?limit=3", nil)
	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.Code)
	}
	if deps.facts.gotCaseID != "CASE-1" || deps.facts.gotLimit != 3 {
		t.Fatalf("facts received %q limit=%d", deps.facts.gotCaseID, deps.facts.gotLimit)
	}

	var payload struct {
		CaseID string            `json:"case_id"`
		Facts  []domain.CaseFact `json:"facts"`
	}
	if err := json.Unmarshal(res.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.CaseID != "CASE-1" || len(payload.Facts) != 1 || payload.Facts[0].Person != "สมชาย ใจดี" {
		t.Fatalf("unexpected payload: %+v", payload)
	}
}

func TestCaseFactsTemporaryError(t *testing.T) {
	deps := &testDeps{facts: &fakeFactReader{err: domain.WrapError(domain.ErrTemporary, "read facts", errors.New("down"))}}
	handler := newTestRouter(deps, Config{})

	res := doJSON(t, handler, http.MethodGet, "/v1/cases/CASE-1/facts", nil)
	if res.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", res.Code)
	}
}

func TestCaseChunks(t *testing.T) {
	deps := &testDeps{chunks: &fakeChunkReader{chunks: []domain.DocChunk{
		{CaseID: "CASE-1", ChunkID: "CASE-1-0", Page: 1, Section: "มาตรา 145"},
	}}}
	handler := newTestRouter(deps, Config{})

	res := doJSON(t, handler, http.MethodGet, "/v1/cases/CASE-1/chunks", nil)
	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.Code)
	}
	if deps.chunks.gotCaseID != "CASE-1" {
		t.Fatalf("chunk reader received %q", deps.chunks.gotCaseID)
	}
}

func TestUnknownCaseResource(t *testing.T) {
	handler := newTestRouter(&testDeps{}, Config{})
	res := doJSON(t, handler, http.MethodGet, "/v1/cases/CASE-1/timeline", nil)
	if res.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", res.Code)
	}
}

func TestRecentCasesEndpoint(t *testing.T) {
	deps := &testDeps{ingest: &fakeIngestor{result: &domain.IngestResult{CaseID: "CASE-A", ChunkCount: 1}}}
	handler := newTestRouter(deps, Config{})

	if res := doJSON(t, handler, http.MethodPost, "/v1/ingest", map[string]any{"texts": []string{"x"}}); res.Code != http.StatusOK {
		t.Fatalf("ingest failed: %d", res.Code)
	}

	res := doJSON(t, handler, http.MethodGet, "/v1/cases/recent", nil)
	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.Code)
	}
	var payload struct {
		CaseIDs []string `json:"case_ids"`
	}
	if err := json.Unmarshal(res.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(payload.CaseIDs) != 1 || payload.CaseIDs[0] != "CASE-A" {
		t.Fatalf("unexpected case ids: %v", payload.CaseIDs)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	handler := newTestRouter(&testDeps{}, Config{})

	if res := doJSON(t, handler, http.MethodGet, "/v1/ingest", nil); res.Code != http.StatusMethodNotAllowed {
		t.Fatalf("GET ingest: expected 405, got %d", res.Code)
	}
	if res := doJSON(t, handler, http.MethodPost, "/v1/search", nil); res.Code != http.StatusMethodNotAllowed {
		t.Fatalf("POST search: expected 405, got %d", res.Code)
	}
	if res := doJSON(t, handler, http.MethodDelete, "/v1/cases/CASE-1/facts", nil); res.Code != http.StatusMethodNotAllowed {
		t.Fatalf("DELETE facts: expected 405, got %d", res.Code)
	}
}
