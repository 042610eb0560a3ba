package router

import "net/http"

type AuthRouteRegistrar interface {
	RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler)
}

type VoiceRouteRegistrar interface {
	RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler)
}

type BankingRouteRegistrar interface {
	RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler)
}

func New(
	authController AuthRouteRegistrar,
	voiceController VoiceRouteRegistrar,
	bankingController BankingRouteRegistrar,
	authMiddleware func(http.Handler) http.Handler,
) *http.ServeMux {
	mux := http.NewServeMux()
	registerHealthRoute(mux)

	if authController != nil {
		authController.RegisterRoutes(mux, authMiddleware)
	}
	if voiceController != nil {
		voiceController.RegisterRoutes(mux, authMiddleware)
	}
	if bankingController != nil {
		bankingController.RegisterRoutes(mux, authMiddleware)
	}

	return mux
}

func registerHealthRoute(mux *http.ServeMux) {
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
}
