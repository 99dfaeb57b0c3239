// Package httpadapter exposes the ingestion, retrieval and question answering
// use cases over HTTP.
package httpadapter

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/worawit/lawgraph/internal/core/ports"
	"github.com/worawit/lawgraph/internal/observability/metrics"
)

type Config struct {
	RateLimitRPS     int
	RateLimitBurst   int
	MaxInFlight      int
	BackpressureWait time.Duration
	RecentCaseBuffer int
	DefaultTopK      int
}

type Router struct {
	ingestUC ports.CaseIngestor
	searchUC ports.CaseSearcher
	askUC    ports.QuestionAnswerer
	factsUC  ports.FactReader
	chunksUC ports.ChunkReader
	extract  ports.TextExtractor
	chunker  ports.Chunker
	recent   *recentCases
	cfg      Config

	httpMetrics *metrics.HTTPServerMetrics
}

func NewRouter(
	ingestUC ports.CaseIngestor,
	searchUC ports.CaseSearcher,
	askUC ports.QuestionAnswerer,
	factsUC ports.FactReader,
	chunksUC ports.ChunkReader,
	extract ports.TextExtractor,
	chunker ports.Chunker,
	httpMetrics *metrics.HTTPServerMetrics,
	cfg Config,
) *Router {
	if cfg.DefaultTopK <= 0 {
		cfg.DefaultTopK = 5
	}
	if cfg.BackpressureWait <= 0 {
		cfg.BackpressureWait = 200 * time.Millisecond
	}
	return &Router{
		ingestUC: ingestUC,
		searchUC: searchUC,
		askUC:    askUC,
		factsUC:  factsUC,
		chunksUC: chunksUC,
		extract:  extract,
		chunker:  chunker,
		recent:   newRecentCases(cfg.RecentCaseBuffer),
		cfg:      cfg,

		httpMetrics: httpMetrics,
	}
}

func (rt *Router) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", rt.healthz)
	mux.HandleFunc("/openapi.json", rt.openAPI)
	mux.HandleFunc("/v1/ingest", rt.ingestTexts)
	mux.HandleFunc("/v1/ingest/file", rt.ingestFile)
	mux.HandleFunc("/v1/ask", rt.ask)
	mux.HandleFunc("/v1/search", rt.search)
	mux.HandleFunc("/v1/cases/recent", rt.recentCaseIDs)
	mux.HandleFunc("/v1/cases/", rt.caseRoutes)

	var handler http.Handler = mux
	handler = backpressureMiddleware(handler, rt.cfg.MaxInFlight, rt.cfg.BackpressureWait)
	handler = rateLimitMiddleware(handler, rt.cfg.RateLimitRPS, rt.cfg.RateLimitBurst)
	handler = rt.httpMetrics.Middleware("api", handler)
	handler = accessLogMiddleware(handler)
	handler = requestIDMiddleware(handler)
	return handler
}

func (rt *Router) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (rt *Router) ingestTexts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	var req struct {
		Texts  []string `json:"texts"`
		CaseID string   `json:"case_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}

	start := time.Now()
	result, err := rt.ingestUC.Ingest(r.Context(), req.Texts, req.CaseID)
	if err != nil {
		rt.httpMetrics.RecordIngest("api", "error", 0, time.Since(start))
		writeError(w, err)
		return
	}
	rt.httpMetrics.RecordIngest("api", "ok", result.ChunkCount, time.Since(start))
	rt.recent.Remember(result.CaseID)

	writeJSON(w, http.StatusOK, result)
}

func (rt *Router) ingestFile(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "multipart field 'file' is required"})
		return
	}
	defer file.Close()

	text, err := rt.extract.Extract(r.Context(), fileHeader.Filename, file)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	chunks := rt.chunker.Split(text)
	if len(chunks) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "no text extracted from upload"})
		return
	}

	start := time.Now()
	result, err := rt.ingestUC.Ingest(r.Context(), chunks, r.FormValue("case_id"))
	if err != nil {
		rt.httpMetrics.RecordIngest("api", "error", 0, time.Since(start))
		writeError(w, err)
		return
	}
	rt.httpMetrics.RecordIngest("api", "ok", result.ChunkCount, time.Since(start))
	rt.recent.Remember(result.CaseID)

	writeJSON(w, http.StatusOK, result)
}

func (rt *Router) ask(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	var req struct {
		Question string `json:"question"`
		CaseID   string `json:"case_id"`
		K        int    `json:"k"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	if strings.TrimSpace(req.Question) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "question is required"})
		return
	}

	caseID := req.CaseID
	if caseID == "" {
		caseID = rt.recent.Latest()
	}
	k := req.K
	if k <= 0 {
		k = rt.cfg.DefaultTopK
	}

	start := time.Now()
	answer, err := rt.askUC.Ask(r.Context(), req.Question, caseID, k)
	if err != nil {
		writeError(w, err)
		return
	}
	rt.httpMetrics.RecordSearch("api", "ask", answer.Mode, len(answer.Chunks), time.Since(start))
	writeJSON(w, http.StatusOK, answer)
}

func (rt *Router) search(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	query := r.URL.Query().Get("q")
	if strings.TrimSpace(query) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "query parameter 'q' is required"})
		return
	}

	k := rt.cfg.DefaultTopK
	if raw := r.URL.Query().Get("k"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "parameter 'k' must be a positive integer"})
			return
		}
		k = parsed
	}

	start := time.Now()
	result, err := rt.searchUC.Search(r.Context(), query, r.URL.Query().Get("case_id"), k)
	if err != nil {
		writeError(w, err)
		return
	}
	rt.httpMetrics.RecordSearch("api", "search", result.Mode, len(result.Chunks), time.Since(start))
	writeJSON(w, http.StatusOK, result)
}

func (rt *Router) recentCaseIDs(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"case_ids": rt.recent.List()})
}

func (rt *Router) caseRoutes(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	rest := strings.TrimPrefix(r.URL.Path, "/v1/cases/")
	caseID, resource, _ := strings.Cut(rest, "/")
	if caseID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "case id is required"})
		return
	}

	switch resource {
	case "facts":
		rt.caseFacts(w, r, caseID)
	case "facts/export":
		rt.exportCaseFacts(w, r, caseID)
	case "chunks":
		rt.caseChunks(w, r, caseID)
	default:
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown case resource"})
	}
}

func (rt *Router) caseFacts(w http.ResponseWriter, r *http.Request, caseID string) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "parameter 'limit' must be a positive integer"})
			return
		}
		limit = parsed
	}

	facts, err := rt.factsUC.Facts(r.Context(), caseID, limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"case_id": caseID, "facts": facts})
}

func (rt *Router) exportCaseFacts(w http.ResponseWriter, r *http.Request, caseID string) {
	facts, err := rt.factsUC.Facts(r.Context(), caseID, 0)
	if err != nil {
		writeError(w, err)
		return
	}

	workbook, err := factsWorkbook(caseID, facts)
	if err != nil {
		writeError(w, err)
		return
	}
	defer workbook.Close()

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", caseID+"-facts.xlsx"))
	w.WriteHeader(http.StatusOK)
	_ = workbook.Write(w)
}

func (rt *Router) caseChunks(w http.ResponseWriter, r *http.Request, caseID string) {
	chunks, err := rt.chunksUC.Chunks(r.Context(), caseID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"case_id": caseID, "chunks": chunks})
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, mapErrorToHTTPStatus(err), map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
