package handler

import (
	"net/http"
	"realitycheck/internal/logger"
	"realitycheck/internal/service"
)

// VisitorHandler issues anonymous visitor tokens
type VisitorHandler struct {
	visitorSvc *service.VisitorService
}

// NewVisitorHandler creates a new visitor handler
func NewVisitorHandler(visitorSvc *service.VisitorService) *VisitorHandler {
	return &VisitorHandler{visitorSvc: visitorSvc}
}

// Issue handles POST /v1/visitors
//
//	@Summary	Issue an anonymous visitor token
//	@Tags		visitors
//	@Produce	json
//	@Success	201	{object}	model.VisitorResponse
//	@Router		/visitors [post]
func (h *VisitorHandler) Issue(w http.ResponseWriter, r *http.Request) {
	resp, err := h.visitorSvc.Issue()
	if err != nil {
		logger.Log.Errorf("issue visitor token: %v", err)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}
