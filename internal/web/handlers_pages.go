package web

import (
	"net/http"

	"github.com/JonMunkholm/industrialdepot/internal/core"
	"github.com/JonMunkholm/industrialdepot/internal/logging"
	"github.com/JonMunkholm/industrialdepot/internal/web/templates"
)

// handleCalculatorPage renders the empty calculator.
func (s *Server) handleCalculatorPage(w http.ResponseWriter, r *http.Request) {
	s.renderCalculator(w, r, http.StatusOK, templates.CalculatorData{
		Options: s.service.MaterialOptions(),
	})
}

// handleCalculatorSubmit renders the calculator with the result of a form
// submission. Validation errors are shown inline.
func (s *Server) handleCalculatorSubmit(w http.ResponseWriter, r *http.Request) {
	data := templates.CalculatorData{Options: s.service.MaterialOptions()}

	req, err := decodeCalculation(w, r)
	if err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}
	data.Material = req.Material
	data.Thickness = req.Thickness

	result, err := s.service.Calculate(r.Context(), req)
	if err != nil {
		msg := core.MapError(err)
		data.Error = &msg
		logging.FromContext(r.Context()).Info("calculation rejected", "code", msg.Code, "error", err)
		s.renderCalculator(w, r, statusFor(err), data)
		return
	}

	data.Result = &result
	s.renderCalculator(w, r, http.StatusOK, data)
}

func (s *Server) renderCalculator(w http.ResponseWriter, r *http.Request, status int, data templates.CalculatorData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := templates.Calculator(data).Render(r.Context(), w); err != nil {
		logging.FromContext(r.Context()).Error("render calculator", "error", err)
	}
}
