package rest

import (
	"fmt"
	"net/http"
	"time"
)

// NewRouter - wires the game endpoints; anything else falls through to the
// bundled web UI under assetsDir.
func NewRouter(handlers Handlers, assetsDir string) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /ping", handlers.Ping)
	mux.HandleFunc("GET /api/config", handlers.GetConfig)
	mux.HandleFunc("GET /board", handlers.GetBoard)
	mux.HandleFunc("POST /move", handlers.MakeMove)
	mux.HandleFunc("POST /ai-move", handlers.MakeBotMove)
	mux.HandleFunc("POST /reset", handlers.ResetGame)

	mux.Handle("/", http.FileServer(http.Dir(assetsDir)))

	return mux
}

func Start(port string, handlers Handlers, assetsDir string) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      NewRouter(handlers, assetsDir),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	if err := srv.ListenAndServe(); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}
