package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"realitycheck/internal/export"
	"realitycheck/internal/logger"
	"realitycheck/internal/model"

	"github.com/gorilla/mux"
)

// ExportHandler turns a posted result into a downloadable file
type ExportHandler struct{}

func NewExportHandler() *ExportHandler {
	return &ExportHandler{}
}

// Export handles POST /v1/export/{format}
//
//	@Summary	Export an analysis result
//	@Tags		export
//	@Accept		json
//	@Produce	octet-stream
//	@Param		format	path		string					true	"md, csv, json, pdf or table"
//	@Param		result	body		model.AnalysisResult	true	"Result to export"
//	@Success	200		{file}		file
//	@Failure	400		{object}	model.ErrorResponse
//	@Router		/export/{format} [post]
func (h *ExportHandler) Export(w http.ResponseWriter, r *http.Request) {
	format, err := export.ParseFormat(mux.Vars(r)["format"])
	if err != nil {
		writeBadRequest(w, "unsupported export format")
		return
	}

	var result model.AnalysisResult
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&result); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	// Render fully before writing headers so a failure can still be reported
	var buf bytes.Buffer
	if err := export.Write(format, &result, &buf); err != nil {
		logger.Log.Errorf("export %s: %v", format, err)
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", export.ContentType(format))
	w.Header().Set("Content-Disposition", "attachment; filename="+export.FileName(format))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}
