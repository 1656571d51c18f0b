package web

import (
	"fmt"
	"net/http"

	"github.com/JonMunkholm/industrialdepot/internal/catalog"
	"github.com/JonMunkholm/industrialdepot/internal/core"
)

// EquipmentView is a model with translated specification rows.
type EquipmentView struct {
	Model  string                  `json:"model"`
	Image  string                  `json:"image,omitempty"`
	Fields []core.DisplayParameter `json:"fields"`
}

// EquipmentList is the response of the list endpoints.
type EquipmentList struct {
	Kind  catalog.Kind    `json:"kind"`
	Items []EquipmentView `json:"items"`
	Count int             `json:"count"`
}

func (s *Server) equipmentView(e catalog.Equipment) EquipmentView {
	return EquipmentView{
		Model:  e.Model,
		Image:  e.Image,
		Fields: e.DisplayFields(s.terms),
	}
}

// handleListEquipment lists the models of a product line.
func (s *Server) handleListEquipment(kind catalog.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list := s.catalog.List(kind)
		items := make([]EquipmentView, 0, len(list))
		for _, e := range list {
			items = append(items, s.equipmentView(e))
		}
		writeJSON(w, http.StatusOK, EquipmentList{Kind: kind, Items: items, Count: len(items)})
	}
}

// handleGetEquipment returns one model by name.
func (s *Server) handleGetEquipment(kind catalog.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		e, err := s.catalog.Get(kind, pathParam(r, "model"))
		if err != nil {
			s.respondError(w, r, err, statusFor(err))
			return
		}
		writeJSON(w, http.StatusOK, s.equipmentView(e))
	}
}

// equipmentKind resolves the {kind} path parameter. An unknown product line
// is reported as not found.
func equipmentKind(r *http.Request) (catalog.Kind, error) {
	name := pathParam(r, "kind")
	kind, ok := catalog.ParseKind(name)
	if !ok {
		return "", fmt.Errorf("product line %q: %w", name, core.ErrEquipmentNotFound)
	}
	return kind, nil
}

func (s *Server) handleListEquipmentByKind(w http.ResponseWriter, r *http.Request) {
	kind, err := equipmentKind(r)
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}
	s.handleListEquipment(kind)(w, r)
}

func (s *Server) handleGetEquipmentByKind(w http.ResponseWriter, r *http.Request) {
	kind, err := equipmentKind(r)
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}
	s.handleGetEquipment(kind)(w, r)
}
