package web

import (
	"net/http"
)

// TranslateResponse is one translated value.
type TranslateResponse struct {
	Kind   string `json:"kind"`
	Input  string `json:"input"`
	Output string `json:"output"`
}

// handleTranslate translates a column term, a material name, or a Spanish
// display material back to its table name. The first of the term, material
// and display parameters present is used.
func (s *Server) handleTranslate(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var resp TranslateResponse
	switch {
	case q.Has("term"):
		resp = TranslateResponse{Kind: "term", Input: q.Get("term")}
		resp.Output = s.terms.TranslateTerm(resp.Input)
	case q.Has("material"):
		resp = TranslateResponse{Kind: "material", Input: q.Get("material")}
		resp.Output = s.terms.TranslateMaterial(resp.Input)
	case q.Has("display"):
		resp = TranslateResponse{Kind: "canonical", Input: q.Get("display")}
		resp.Output = s.terms.TranslateMaterialToCanonical(resp.Input)
	default:
		s.respondError(w, r, errInvalidRequest, http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}
