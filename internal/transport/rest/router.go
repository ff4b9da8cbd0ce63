package rest

import (
	"net/http"
	"realitycheck/internal/service"
	"realitycheck/internal/transport/rest/handler"
	"realitycheck/internal/transport/rest/middleware"
	"realitycheck/internal/transport/ws"

	"github.com/gorilla/mux"
	"github.com/swaggo/swag"
)

// Container holds all dependencies for the router
type Container struct {
	AnalysisService *service.AnalysisService
	VisitorService  *service.VisitorService
	AllowedOrigins  string
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	// Initialize handlers
	analyzeHandler := handler.NewAnalyzeHandler(c.AnalysisService)
	exportHandler := handler.NewExportHandler()
	visitorHandler := handler.NewVisitorHandler(c.VisitorService)
	wsHandler := ws.NewHandler(c.AnalysisService)

	visitorMW := middleware.NewVisitorMiddleware(c.VisitorService)

	// CORS first so preflight requests skip everything else
	r.Use(corsMiddleware(c.AllowedOrigins))
	r.Use(middleware.ClientIP)
	r.Use(middleware.RequestLogger)

	v1 := r.PathPrefix("/v1").Subrouter()
	v1.Use(visitorMW.Identify)

	v1.HandleFunc("/analyze", analyzeHandler.Analyze).Methods("POST", "OPTIONS")
	v1.HandleFunc("/parse", analyzeHandler.Parse).Methods("POST", "OPTIONS")
	v1.HandleFunc("/export/{format}", exportHandler.Export).Methods("POST", "OPTIONS")
	v1.HandleFunc("/visitors", visitorHandler.Issue).Methods("POST", "OPTIONS")

	// WebSocket (visitor token in query param)
	v1.HandleFunc("/ws/analyze", wsHandler.AnalyzeWS).Methods("GET")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	r.HandleFunc("/swagger/doc.json", func(w http.ResponseWriter, r *http.Request) {
		doc, err := swag.ReadDoc()
		if err != nil {
			http.Error(w, `{"error":"api documentation not registered"}`, http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(doc))
	}).Methods("GET")

	return r
}

func corsMiddleware(allowedOrigins string) mux.MiddlewareFunc {
	if allowedOrigins == "" {
		allowedOrigins = "*"
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", allowedOrigins)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			w.Header().Set("Access-Control-Expose-Headers", "Content-Disposition")

			if r.Method == "OPTIONS" {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
