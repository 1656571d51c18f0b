package core

import (
	"context"
	"log/slog"
	"sort"
)

// Translator converts catalog terms and materials between the English table
// data and the Spanish display language.
type Translator interface {
	TranslateTerm(key string) string
	TranslateMaterial(name string) string
	TranslateMaterialToCanonical(display string) string
}

// Service is the query interface over the record store.
type Service struct {
	store   *Store
	terms   Translator
	logger  *slog.Logger
	limiter *RefreshLimiter
}

// NewService creates a service over a store. A nil logger uses slog.Default.
func NewService(store *Store, terms Translator, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		store:   store,
		terms:   terms,
		logger:  logger,
		limiter: NewRefreshLimiter(DefaultMaxConcurrentRefreshes, DefaultRefreshWait),
	}
}

// Store returns the underlying record store.
func (s *Service) Store() *Store {
	return s.store
}

// Limiter returns the limiter guarding Refresh.
func (s *Service) Limiter() *RefreshLimiter {
	return s.limiter
}

// Refresh re-reads all sources. See Store.Refresh. Concurrent calls queue
// behind the refresh limiter and fail with ErrRefreshBusy when it stays full.
func (s *Service) Refresh(ctx context.Context) error {
	if err := s.limiter.Acquire(ctx); err != nil {
		return err
	}
	defer s.limiter.Release()

	return s.store.Refresh(ctx)
}

// Status summarizes the loaded tables.
func (s *Service) Status() []TableStatus {
	return s.store.Status()
}

// AvailableMaterials returns the distinct materials of the cut table, sorted.
func (s *Service) AvailableMaterials() []string {
	seen := make(map[string]bool)
	var out []string
	for _, rec := range s.store.Records(KindCut) {
		if !seen[rec.Material] {
			seen[rec.Material] = true
			out = append(out, rec.Material)
		}
	}
	sort.Strings(out)
	return out
}

// MaterialOption pairs a table material with its display name.
type MaterialOption struct {
	Canonical string `json:"canonical"`
	Display   string `json:"display"`
}

// MaterialOptions returns the available materials with display names.
// When two materials share a display name only the first is offered.
func (s *Service) MaterialOptions() []MaterialOption {
	var out []MaterialOption
	seen := make(map[string]bool)
	for _, m := range s.AvailableMaterials() {
		display := s.terms.TranslateMaterial(m)
		if seen[display] {
			continue
		}
		seen[display] = true
		out = append(out, MaterialOption{Canonical: m, Display: display})
	}
	return out
}

// FindCutParams returns the best cutting record for a material and thickness.
func (s *Service) FindCutParams(material string, thickness float64) (ParameterRecord, bool) {
	rec, kind := s.Lookup(KindCut, material, thickness)
	return rec, kind != MatchNone
}

// FindPerforationParams returns the best perforation record for a material
// and thickness.
func (s *Service) FindPerforationParams(material string, thickness float64) (ParameterRecord, bool) {
	rec, kind := s.Lookup(KindPerforation, material, thickness)
	return rec, kind != MatchNone
}

// Lookup matches against the current table of a kind and reports how the
// record was selected.
func (s *Service) Lookup(kind TableKind, material string, thickness float64) (ParameterRecord, MatchKind) {
	rec, match := Match(s.store.Records(kind), material, thickness)
	s.store.observer.LookupCompleted(kind, match)
	s.logger.Debug("parameter lookup",
		"table", kind,
		"material", material,
		"thickness", thickness,
		"result", match.String(),
		"id", rec.ID,
	)
	return rec, match
}

// CalculationRequest is a calculator submission as entered by the user.
type CalculationRequest struct {
	Material  string `json:"material"`
	Thickness string `json:"thickness"`
}

// CalculationResult is the presented outcome of a calculation.
type CalculationResult struct {
	Found           bool               `json:"found"`
	Material        string             `json:"material"`
	DisplayMaterial string             `json:"displayMaterial"`
	Thickness       float64            `json:"thickness"`
	Match           string             `json:"match"`
	Model           string             `json:"model,omitempty"`
	Record          *ParameterRecord   `json:"record,omitempty"`
	Parameters      []DisplayParameter `json:"parameters,omitempty"`
	Message         string             `json:"message,omitempty"`
}

// Calculate validates a calculator request and looks up cutting parameters.
//
// The thickness must be a non-negative number and the material must be one
// of the offered materials, by display or table name. Validation failures are
// returned as ValidationError. A valid request with no matching record is not
// an error: the result has Found false and the no-match message.
func (s *Service) Calculate(ctx context.Context, req CalculationRequest) (CalculationResult, error) {
	if err := ctx.Err(); err != nil {
		return CalculationResult{}, err
	}

	thickness, err := ValidateThickness(req.Thickness)
	if err != nil {
		return CalculationResult{}, err
	}

	options := s.MaterialOptions()
	mapping := make(map[string]string, len(options))
	canonical := s.AvailableMaterials()
	for _, o := range options {
		mapping[o.Display] = o.Canonical
	}

	material, err := ValidateMaterial(req.Material, mapping, canonical)
	if err != nil {
		// Display names outside the offered list may still resolve through
		// the reverse dictionary.
		resolved := s.terms.TranslateMaterialToCanonical(req.Material)
		material, err = ValidateMaterial(resolved, nil, canonical)
		if err != nil {
			return CalculationResult{}, ValidationError{Field: FieldMaterial, Value: req.Material, Message: MsgInvalidMaterial}
		}
	}

	result := CalculationResult{
		Material:        material,
		DisplayMaterial: s.terms.TranslateMaterial(material),
		Thickness:       thickness,
	}

	rec, match := s.Lookup(KindCut, material, thickness)
	result.Match = match.String()
	if match == MatchNone {
		msg := MapError(ErrNoMatch)
		result.Message = msg.Message + " " + msg.Action
		s.logger.Info("no cut parameters", "material", material, "thickness", thickness)
		return result, nil
	}

	result.Found = true
	result.Model = ModelSeries(rec.ID)
	result.Record = &rec
	result.Parameters = DisplayParameters(rec, s.terms)
	return result, nil
}
