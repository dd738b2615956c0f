package web

import (
	"fmt"
	"net/http"

	"github.com/intelligrit/osrs-drops/internal/scraper"
	"github.com/intelligrit/osrs-drops/internal/store"
)

// Server serves cached and live drop table lookups as JSON.
type Server struct {
	Store  *store.Store
	Client *scraper.Client
	Addr   string
}

// Handler returns the API routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/drops", s.handleDrops)
	mux.HandleFunc("/api/monsters", s.handleMonsters)
	return mux
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe() error {
	fmt.Printf("Serving at http://%s\n", s.Addr)
	return http.ListenAndServe(s.Addr, s.Handler())
}
