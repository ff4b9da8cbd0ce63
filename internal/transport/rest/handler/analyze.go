package handler

import (
	"encoding/json"
	"net/http"
	"realitycheck/internal/model"
	"realitycheck/internal/service"
	"realitycheck/internal/transport/rest/middleware"
)

// maxBodyBytes bounds request bodies; raw model responses are a few KB
const maxBodyBytes = 1 << 20

// AnalyzeHandler handles analysis endpoints
type AnalyzeHandler struct {
	analysisSvc *service.AnalysisService
}

// NewAnalyzeHandler creates a new analyze handler
func NewAnalyzeHandler(analysisSvc *service.AnalysisService) *AnalyzeHandler {
	return &AnalyzeHandler{analysisSvc: analysisSvc}
}

// Analyze handles POST /v1/analyze
//
//	@Summary	Analyze a SaaS product against its competitors
//	@Tags		analysis
//	@Accept		json
//	@Produce	json
//	@Param		request	body		model.AnalyzeRequest	true	"Product and options"
//	@Success	200		{object}	model.Analysis
//	@Failure	400		{object}	model.ErrorResponse
//	@Failure	429		{object}	model.ErrorResponse
//	@Failure	500		{object}	model.ErrorResponse
//	@Router		/analyze [post]
func (h *AnalyzeHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	var req model.AnalyzeRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	result, err := h.analysisSvc.Analyze(r.Context(), middleware.CallerFrom(r), req.Product, req.Options)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// Parse handles POST /v1/parse
//
//	@Summary	Parse a raw model response without calling the model
//	@Tags		analysis
//	@Accept		json
//	@Produce	json
//	@Param		request	body		model.ParseRequest	true	"Raw response text"
//	@Success	200		{object}	model.AnalysisResult
//	@Failure	400		{object}	model.ErrorResponse
//	@Router		/parse [post]
func (h *AnalyzeHandler) Parse(w http.ResponseWriter, r *http.Request) {
	var req model.ParseRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	writeJSON(w, http.StatusOK, h.analysisSvc.AnalyzeText(req.Text))
}
