package api

import (
	"encoding/json"
	"net/http"

	"github.com/tkaine/mdstruct/internal/mdtree"
	"github.com/tkaine/mdstruct/internal/numbering"
	"github.com/tkaine/mdstruct/internal/parse"
	"github.com/tkaine/mdstruct/internal/render"
	"github.com/tkaine/mdstruct/internal/validate"
)

type documentRequest struct {
	Content string `json:"content"`

	// Numbering policy; used by number and preview.
	IgnoreH1        bool `json:"ignore_h1"`
	CJKNumbers      bool `json:"cjk_numbers"`
	ArabicSublevels bool `json:"arabic_sublevels"`

	// Preview only: include numbering labels in the rendered HTML.
	Numbering bool `json:"numbering"`
}

func (s *Server) decodeDocument(w http.ResponseWriter, r *http.Request) (*documentRequest, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)
	var req documentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return nil, false
	}
	if req.Content == "" {
		jsonError(w, "content is required", http.StatusBadRequest)
		return nil, false
	}
	return &req, true
}

func (r *documentRequest) policy() mdtree.Policy {
	return mdtree.Policy{
		IgnoreFirstLevel:  r.IgnoreH1,
		LocalizedOrdinals: r.CJKNumbers,
		ArabicSublevels:   r.ArabicSublevels,
	}
}

// handleNumber assigns chapter numbers to every heading.
func (s *Server) handleNumber(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeDocument(w, r)
	if !ok {
		return
	}

	doc := parse.Build(req.Content)
	numbering.Apply(doc.Root, req.policy())

	writeJSON(w, http.StatusOK, map[string]any{
		"content": render.Markdown(doc.Root, true),
		"meta":    doc.Meta,
	})
}

// handleStrip removes any generated numbering from every heading.
func (s *Server) handleStrip(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeDocument(w, r)
	if !ok {
		return
	}

	doc := parse.Build(req.Content)

	writeJSON(w, http.StatusOK, map[string]any{
		"content": render.Markdown(doc.Root, false),
		"meta":    doc.Meta,
	})
}

// handleCheck validates heading syntax and level progression.
func (s *Server) handleCheck(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeDocument(w, r)
	if !ok {
		return
	}

	report := validate.Check(parse.Build(req.Content).Root)
	writeJSON(w, http.StatusOK, report)
}

// handlePreview renders the document (optionally numbered) as HTML.
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeDocument(w, r)
	if !ok {
		return
	}

	doc := parse.Build(req.Content)
	if req.Numbering {
		numbering.Apply(doc.Root, req.policy())
	}

	out, err := render.HTML(doc.Root, req.Numbering)
	if err != nil {
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(out)
}
