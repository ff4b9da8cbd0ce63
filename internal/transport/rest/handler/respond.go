package handler

import (
	"encoding/json"
	"net/http"
	"realitycheck/internal/model"
	"realitycheck/internal/service"

	"github.com/go-kratos/kratos/v2/errors"
)

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError renders any error as {"error","code"}; kratos errors carry
// their own status, everything else is a generic 500.
func writeError(w http.ResponseWriter, err error) {
	e := errors.FromError(err)
	status := int(e.Code)
	if status < 400 || status > 599 || e.Reason == "" {
		e = service.ErrGeneric
		status = int(e.Code)
	}
	writeJSON(w, status, model.ErrorResponse{Error: e.Message, Code: e.Reason})
}

func writeBadRequest(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, model.ErrorResponse{Error: message, Code: service.ReasonInvalidInput})
}
