package api

import (
	"encoding/json"
	"net/http"
	"time"
)

// handleListDocuments reports what the live corpus was built from.
func (s *Server) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	snap := s.engine.Snapshot()
	if snap == nil {
		json.NewEncoder(w).Encode(map[string]any{
			"documents": []string{},
			"chunks":    0,
		})
		return
	}

	json.NewEncoder(w).Encode(map[string]any{
		"documents": snap.Sources,
		"chunks":    len(snap.Chunks),
		"built_at":  snap.BuiltAt.Format(time.RFC3339),
	})
}
