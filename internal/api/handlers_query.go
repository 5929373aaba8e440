package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"bookqa/internal/answer"
	"bookqa/internal/engine"
)

type queryRequest struct {
	Question string `json:"question"`
	TopK     int    `json:"top_k"`
	Polish   bool   `json:"polish"`
}

type queryResponse struct {
	Question  string   `json:"question"`
	Answer    string   `json:"answer"`
	PageRange string   `json:"page_range"`
	Sources   []string `json:"sources"`
}

func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	var req queryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	req.Question = strings.TrimSpace(req.Question)
	if req.Question == "" {
		jsonError(w, "question is required", http.StatusBadRequest)
		return
	}

	res, err := s.engine.Query(r.Context(), req.Question, req.TopK, req.Polish)
	if err != nil {
		if errors.Is(err, engine.ErrNoIndex) {
			jsonError(w, err.Error(), http.StatusBadRequest)
			return
		}
		s.log.Error("query failed", "error", err)
		jsonError(w, "query failed: "+err.Error(), http.StatusInternalServerError)
		return
	}

	sources := res.Sources
	if sources == nil {
		sources = []string{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(queryResponse{
		Question:  res.Question,
		Answer:    res.Answer,
		PageRange: answer.FormatPageRange(res.PageStart, res.PageEnd),
		Sources:   sources,
	})
}
