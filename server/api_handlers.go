package server

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"
)

const contentTypeJSON = "application/json"

// APIUsersHandler returns the raw user table as a JSON list (admin only)
func (s *Server) APIUsersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", contentTypeJSON)
		if err := json.NewEncoder(w).Encode(s.users.GetAll()); err != nil {
			log.Err(err).Msg("failed to encode users response")
		}
	}
}

// APILogsHandler returns the most recent activity entries as a JSON list
// in chronological order (admin only)
func (s *Server) APILogsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entries, err := s.activity.Recent(recentLogLimit)
		if err != nil {
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", contentTypeJSON)
		if err := json.NewEncoder(w).Encode(entries); err != nil {
			log.Err(err).Msg("failed to encode logs response")
		}
	}
}
