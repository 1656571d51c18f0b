package web

// This file contains shared request parsing used across handlers.

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/JonMunkholm/industrialdepot/internal/core"
)

// maxFormSize bounds calculator request bodies.
const maxFormSize = 64 * 1024

// parseLookupQuery reads the material and thickness query parameters.
func parseLookupQuery(r *http.Request) (string, float64, error) {
	q := r.URL.Query()

	material := strings.TrimSpace(q.Get("material"))
	if material == "" {
		return "", 0, core.ValidationError{
			Field:   core.FieldMaterial,
			Message: core.MsgInvalidMaterial,
		}
	}

	thickness, err := core.ValidateThickness(q.Get("thickness"))
	if err != nil {
		return "", 0, err
	}
	return material, thickness, nil
}

// decodeCalculation reads a calculator submission from a JSON or form body.
func decodeCalculation(w http.ResponseWriter, r *http.Request) (core.CalculationRequest, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormSize)

	var req core.CalculationRequest
	if isJSONBody(r) {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return req, fmt.Errorf("%w: %v", errInvalidRequest, err)
		}
		return req, nil
	}

	if err := r.ParseForm(); err != nil {
		return req, fmt.Errorf("%w: %v", errInvalidRequest, err)
	}
	req.Material = r.PostForm.Get("material")
	req.Thickness = r.PostForm.Get("thickness")
	return req, nil
}

// pathParam returns an unescaped URL parameter. Model names may contain
// an encoded "/" which chi leaves escaped.
func pathParam(r *http.Request, name string) string {
	raw := chi.URLParam(r, name)
	if v, err := url.PathUnescape(raw); err == nil {
		return v
	}
	return raw
}
