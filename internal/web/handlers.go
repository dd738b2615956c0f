package web

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/intelligrit/osrs-drops/internal/scraper"
)

// handleDrops answers from the cache when it can and fetches the wiki page
// otherwise. refresh=1 skips the cache.
func (s *Server) handleDrops(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("monster")
	page := scraper.SanitizeName(name)
	if page == "" {
		http.Error(w, "missing 'monster' parameter", http.StatusBadRequest)
		return
	}

	refresh := false
	if v := r.URL.Query().Get("refresh"); v != "" {
		var err error
		refresh, err = strconv.ParseBool(v)
		if err != nil {
			http.Error(w, "invalid 'refresh' parameter", http.StatusBadRequest)
			return
		}
	}

	if !refresh {
		md, err := s.Store.ReadDrops(page)
		if err == nil {
			writeJSON(w, md)
			return
		}
		if !errors.Is(err, sql.ErrNoRows) {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	}

	md, err := s.Client.FetchMonster(r.Context(), name)
	if err != nil {
		slog.WarnContext(r.Context(), "drop lookup failed", "monster", page, "err", err)
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}

	if err := s.Store.WriteDrops(md); err != nil {
		slog.WarnContext(r.Context(), "caching drops failed", "monster", page, "err", err)
	}
	writeJSON(w, md)
}

func (s *Server) handleMonsters(w http.ResponseWriter, r *http.Request) {
	monsters, err := s.Store.Monsters()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, monsters)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	if v == nil {
		_, _ = w.Write([]byte("[]"))
		return
	}
	_ = json.NewEncoder(w).Encode(v)
}
