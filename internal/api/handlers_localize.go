package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/tkaine/mdstruct/internal/pipeline"
)

type localizeRequest struct {
	Content     string `json:"content"`
	AssetDir    string `json:"asset_dir,omitempty"`
	NamePattern string `json:"name_pattern,omitempty"`
}

// handleLocalize queues an image-localization job and returns a poll URL.
func (s *Server) handleLocalize(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)
	var req localizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.Content == "" {
		jsonError(w, "content is required", http.StatusBadRequest)
		return
	}

	now := time.Now()
	job := &pipeline.Job{
		ID:          uuid.NewString(),
		Status:      pipeline.StatusQueued,
		Phase:       "queued",
		AssetDir:    req.AssetDir,
		NamePattern: req.NamePattern,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	job.SetContent(req.Content)

	if err := s.orchestrator.Submit(job); err != nil {
		jsonError(w, err.Error(), http.StatusServiceUnavailable)
		return
	}

	writeJSON(w, http.StatusAccepted, map[string]any{
		"job_id":   job.ID,
		"status":   pipeline.StatusQueued,
		"poll_url": fmt.Sprintf("/api/localize/%s", job.ID),
	})
}

// handleLocalizeStatus reports job progress and, once terminal, the
// rewritten document with per-image outcomes.
func (s *Server) handleLocalizeStatus(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")
	job := s.orchestrator.GetJob(jobID)
	if job == nil {
		jsonError(w, "job not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, job.Snapshot())
}
