package rest

import (
	_ "careerai/docs"
	"careerai/internal/config"
	"careerai/internal/metrics"
	"careerai/internal/service"
	"careerai/internal/transport/rest/handler"
	"careerai/internal/transport/rest/middleware"
	"careerai/internal/transport/ws"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/swaggo/swag"
	"go.uber.org/zap"
)

// Container holds all dependencies for the router
type Container struct {
	Config           *config.Config
	AuthService      *service.AuthService
	SummarizeService *service.SummarizeService
	WizardService    *service.WizardService
	ProgressService  *service.ProgressService
	WSHub            *ws.Hub
	WSHandler        *ws.Handler
	Metrics          *metrics.Metrics
	Logger           *zap.Logger
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	// Initialize handlers
	authHandler := handler.NewAuthHandler(c.AuthService, c.WSHub, c.Logger)
	summarizeHandler := handler.NewSummarizeHandler(c.SummarizeService, c.Logger)
	wizardHandler := handler.NewWizardHandler(c.WizardService, c.Logger)
	progressHandler := handler.NewProgressHandler(c.ProgressService, c.Logger)
	pageHandler := handler.NewPageHandler(c.ProgressService, c.WizardService, c.Logger)

	// Initialize middleware
	authMW := middleware.NewAuthMiddleware(c.AuthService)

	// CORS middleware (apply first)
	r.Use(corsMiddleware(c.Config))

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")
	r.Handle("/metrics", c.Metrics.Handler()).Methods("GET")
	r.HandleFunc("/swagger/doc.json", swaggerDoc).Methods("GET")

	// API v1 routes
	v1 := r.PathPrefix("/v1").Subrouter()

	// Public routes
	v1.HandleFunc("/auth/signup", authHandler.Signup).Methods("POST", "OPTIONS")
	v1.HandleFunc("/auth/login", authHandler.Login).Methods("POST", "OPTIONS")
	v1.Handle("/auth/session", authMW.OptionalUser(http.HandlerFunc(authHandler.Session))).Methods("GET", "OPTIONS")
	v1.HandleFunc("/categories", handler.Categories).Methods("GET", "OPTIONS")

	// WebSocket route (public with token in query param)
	if c.WSHandler != nil {
		v1.HandleFunc("/ws/wizard", c.WSHandler.WizardWS).Methods("GET")
	}

	// User routes (require a session)
	userRoutes := v1.NewRoute().Subrouter()
	userRoutes.Use(authMW.RequireUser)

	userRoutes.HandleFunc("/auth/logout", authHandler.Logout).Methods("POST", "OPTIONS")
	userRoutes.HandleFunc("/summarize", summarizeHandler.Summarize).Methods("POST", "OPTIONS")

	userRoutes.HandleFunc("/wizard", wizardHandler.Start).Methods("POST", "OPTIONS")
	userRoutes.HandleFunc("/wizard", wizardHandler.Get).Methods("GET", "OPTIONS")
	userRoutes.HandleFunc("/wizard/answer", wizardHandler.Answer).Methods("PUT", "OPTIONS")
	userRoutes.HandleFunc("/wizard/toggle", wizardHandler.Toggle).Methods("POST", "OPTIONS")
	userRoutes.HandleFunc("/wizard/advance", wizardHandler.Advance).Methods("POST", "OPTIONS")
	userRoutes.HandleFunc("/wizard/retreat", wizardHandler.Retreat).Methods("POST", "OPTIONS")
	userRoutes.HandleFunc("/wizard/submit", wizardHandler.Submit).Methods("POST", "OPTIONS")

	userRoutes.HandleFunc("/result", progressHandler.GetResult).Methods("GET", "OPTIONS")
	userRoutes.HandleFunc("/result", progressHandler.ClearResult).Methods("DELETE", "OPTIONS")
	userRoutes.HandleFunc("/result/export", progressHandler.Export).Methods("GET", "OPTIONS")
	userRoutes.HandleFunc("/result/history", progressHandler.History).Methods("GET", "OPTIONS")

	userRoutes.HandleFunc("/checklist", progressHandler.GetChecklist).Methods("GET", "OPTIONS")
	userRoutes.HandleFunc("/checklist", progressHandler.SetChecklist).Methods("PUT", "OPTIONS")
	userRoutes.HandleFunc("/checklist", progressHandler.UpdateChecklist).Methods("PATCH", "OPTIONS")

	// Page routes behind the session gate
	pages := r.NewRoute().Subrouter()
	pages.Use(authMW.Gate)

	pages.HandleFunc("/", pageHandler.Home).Methods("GET")
	pages.HandleFunc("/dashboard", pageHandler.Dashboard).Methods("GET")
	pages.HandleFunc("/ikigai", pageHandler.Ikigai).Methods("GET")
	pages.HandleFunc("/ikigai/results", pageHandler.Results).Methods("GET")
	pages.HandleFunc("/ikigai/explore", pageHandler.Explore).Methods("GET")

	return r
}

func swaggerDoc(w http.ResponseWriter, r *http.Request) {
	doc, err := swag.ReadDoc()
	if err != nil {
		http.Error(w, `{"error":"api docs unavailable"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(doc))
}

func corsMiddleware(cfg *config.Config) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", cfg.CORSAllowedOrigins)
			w.Header().Set("Access-Control-Allow-Methods", cfg.CORSAllowedMethods)
			w.Header().Set("Access-Control-Allow-Headers", cfg.CORSAllowedHeaders)

			if r.Method == "OPTIONS" {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
