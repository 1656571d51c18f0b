// Package catalog serves the robot and cobot specifications.
//
// The catalog is static data decoded from YAML. Field keys keep the
// spelling of the source sheets (Payload_kg, Reach_mm); they are
// translated for display through a term mapper.
package catalog

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"
	"sync/atomic"

	"gopkg.in/yaml.v3"

	"github.com/JonMunkholm/industrialdepot/internal/core"
	"github.com/JonMunkholm/industrialdepot/internal/translate"
)

//go:embed equipment.yaml
var defaultEquipment []byte

// Kind selects a product line.
type Kind string

const (
	KindRobot Kind = "robots"
	KindCobot Kind = "cobots"
)

// ParseKind validates a product line name.
func ParseKind(s string) (Kind, bool) {
	switch Kind(strings.ToLower(strings.TrimSpace(s))) {
	case KindRobot:
		return KindRobot, true
	case KindCobot:
		return KindCobot, true
	}
	return "", false
}

// Equipment is one robot or cobot model.
type Equipment struct {
	Model  string               `yaml:"model"`
	Image  string               `yaml:"image"`
	Fields translate.Dictionary `yaml:"fields"`
}

// DisplayFields returns the specification rows with translated labels, in
// declaration order.
func (e Equipment) DisplayFields(terms core.TermTranslator) []core.DisplayParameter {
	entries := e.Fields.Entries()
	out := make([]core.DisplayParameter, 0, len(entries))
	for _, f := range entries {
		out = append(out, core.DisplayParameter{
			Key:   f.Key,
			Label: terms.TranslateTerm(f.Key),
			Value: f.Value,
		})
	}
	return out
}

type document struct {
	Robots []Equipment `yaml:"robots"`
	Cobots []Equipment `yaml:"cobots"`
}

func (d document) list(kind Kind) []Equipment {
	if kind == KindCobot {
		return d.Cobots
	}
	return d.Robots
}

// Catalog holds the decoded equipment lists.
type Catalog struct {
	path string
	doc  atomic.Pointer[document]
}

// Load decodes an equipment document.
func Load(r io.Reader) (*Catalog, error) {
	doc, err := decode(r)
	if err != nil {
		return nil, err
	}
	c := &Catalog{}
	c.doc.Store(doc)
	return c, nil
}

// LoadFile decodes the equipment file at path. Refresh re-reads it.
func LoadFile(path string) (*Catalog, error) {
	c := &Catalog{path: path}
	if err := c.Refresh(); err != nil {
		return nil, err
	}
	return c, nil
}

// Default returns the catalog bundled with the binary.
func Default() (*Catalog, error) {
	return Load(bytes.NewReader(defaultEquipment))
}

// Refresh re-reads the backing file. Embedded catalogs are unchanged.
// On error the previous lists stay in place.
func (c *Catalog) Refresh() error {
	if c.path == "" {
		return nil
	}

	f, err := os.Open(c.path)
	if err != nil {
		return fmt.Errorf("open equipment file: %w", err)
	}
	defer f.Close()

	doc, err := decode(f)
	if err != nil {
		return fmt.Errorf("%s: %w", c.path, err)
	}
	c.doc.Store(doc)
	return nil
}

func decode(r io.Reader) (*document, error) {
	var doc document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil && err != io.EOF {
		return nil, fmt.Errorf("decode equipment: %w", err)
	}

	for _, kind := range []Kind{KindRobot, KindCobot} {
		seen := make(map[string]bool)
		for i, e := range doc.list(kind) {
			if e.Model == "" {
				return nil, fmt.Errorf("%s[%d]: model is required", kind, i)
			}
			if seen[e.Model] {
				return nil, fmt.Errorf("%s[%d]: duplicate model %q", kind, i, e.Model)
			}
			seen[e.Model] = true
		}
	}
	return &doc, nil
}

// List returns the models of a product line in file order.
func (c *Catalog) List(kind Kind) []Equipment {
	return c.doc.Load().list(kind)
}

// Robots returns the robot models.
func (c *Catalog) Robots() []Equipment {
	return c.List(KindRobot)
}

// Cobots returns the cobot models.
func (c *Catalog) Cobots() []Equipment {
	return c.List(KindCobot)
}

// Get finds a model by name, ignoring case.
func (c *Catalog) Get(kind Kind, model string) (Equipment, error) {
	model = strings.TrimSpace(model)
	for _, e := range c.List(kind) {
		if strings.EqualFold(e.Model, model) {
			return e, nil
		}
	}
	return Equipment{}, fmt.Errorf("%s %q: %w", kind, model, core.ErrEquipmentNotFound)
}
