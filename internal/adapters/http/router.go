package httpadapter

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/rpzk/clindoc/internal/core/analysis"
	"github.com/rpzk/clindoc/internal/core/domain"
	"github.com/rpzk/clindoc/internal/core/ports"
	"github.com/rpzk/clindoc/internal/infrastructure/export/excel"
	"github.com/rpzk/clindoc/internal/observability/metrics"
)

type Router struct {
	service  string
	ingestUC ports.DocumentIngestor
	reader   ports.DocumentReader
	importer ports.RegistrationImporter
	exporter *excel.Writer
	metrics  *metrics.HTTPServerMetrics
	limiter  *clientLimiter
}

func NewRouter(
	service string,
	ingestUC ports.DocumentIngestor,
	reader ports.DocumentReader,
	importer ports.RegistrationImporter,
	exporter *excel.Writer,
	httpMetrics *metrics.HTTPServerMetrics,
	limiter *clientLimiter,
) *Router {
	return &Router{
		service:  service,
		ingestUC: ingestUC,
		reader:   reader,
		importer: importer,
		exporter: exporter,
		metrics:  httpMetrics,
		limiter:  limiter,
	}
}

func (rt *Router) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", rt.healthz)
	mux.HandleFunc("/v1/documents", rt.uploadDocument)
	mux.HandleFunc("/v1/documents/", rt.documentSubresource)
	mux.HandleFunc("/v1/registrations/import", rt.importRegistration)
	mux.Handle("/metrics", rt.metrics.Handler())

	var handler http.Handler = mux
	handler = rt.metrics.Middleware(rt.service, handler)
	if rt.limiter != nil {
		handler = rt.limiter.Middleware(rt.service, rt.metrics, handler)
	}
	handler = accessLogMiddleware(handler)
	handler = requestIDMiddleware(handler)
	return handler
}

func (rt *Router) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (rt *Router) uploadDocument(w http.ResponseWriter, r *http.Request) {
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

	doc, err := rt.ingestUC.Upload(
		r.Context(),
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
		strings.TrimSpace(r.FormValue("patient_id")),
		file,
	)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusAccepted, doc)
}

// documentSubresource dispatches /v1/documents/{id}[,/analysis,/report,/review.xlsx].
func (rt *Router) documentSubresource(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	rest := strings.TrimPrefix(r.URL.Path, "/v1/documents/")
	id, sub, _ := strings.Cut(rest, "/")
	if id == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "document id is required"})
		return
	}

	switch sub {
	case "":
		rt.getDocument(w, r, id)
	case "analysis":
		rt.getAnalysis(w, r, id)
	case "report":
		rt.getReport(w, r, id)
	case "review.xlsx":
		rt.getReviewSheet(w, r, id)
	default:
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown resource"})
	}
}

func (rt *Router) getDocument(w http.ResponseWriter, r *http.Request, id string) {
	doc, err := rt.reader.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func (rt *Router) getAnalysis(w http.ResponseWriter, r *http.Request, id string) {
	res, err := rt.reader.GetAnalysis(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (rt *Router) getReport(w http.ResponseWriter, r *http.Request, id string) {
	res, err := rt.reader.GetAnalysis(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(analysis.RenderReport(*res)))
}

func (rt *Router) getReviewSheet(w http.ResponseWriter, r *http.Request, id string) {
	res, err := rt.reader.GetAnalysis(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", id+"_review.xlsx"))
	if err := rt.exporter.Write(w, []domain.AnalysisResult{*res}); err != nil {
		// Headers are already out; nothing left to do but log upstream.
		return
	}
}

func (rt *Router) importRegistration(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	var req struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "text is required"})
		return
	}

	outcome, err := rt.importer.Import(r.Context(), req.Text)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, outcome)
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, mapErrorToHTTPStatus(err), map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
