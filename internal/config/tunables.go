package config

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/abhisek/lexis/internal/mastery"
	"github.com/abhisek/lexis/internal/session"
)

//go:embed tunables.schema.json
var tunablesSchema []byte

const tunablesSchemaURL = "schema://lexis/tunables.json"

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

// Tunables are the knobs of the scoring and mastery components.
type Tunables struct {
	WeakThreshold       float64     `json:"weakThreshold"`
	StrongThreshold     float64     `json:"strongThreshold"`
	MasteryDueDaysTable map[int]int `json:"masteryDueDaysTable"`
}

// DefaultTunables returns 0.6 / 0.85 and the default due table.
func DefaultTunables() Tunables {
	th := session.DefaultThresholds()
	table := make(map[int]int, len(mastery.DefaultDueTable))
	for level, days := range mastery.DefaultDueTable {
		table[level] = days
	}
	return Tunables{
		WeakThreshold:       th.Weak,
		StrongThreshold:     th.Strong,
		MasteryDueDaysTable: table,
	}
}

// Thresholds returns the session thresholds.
func (t Tunables) Thresholds() session.Thresholds {
	return session.Thresholds{Weak: t.WeakThreshold, Strong: t.StrongThreshold}
}

// DueTable returns the mastery due table.
func (t Tunables) DueTable() (mastery.DueTable, error) {
	return mastery.DueTableFromMap(t.MasteryDueDaysTable)
}

// Validate applies the component-level checks on top of the schema.
func (t Tunables) Validate() error {
	if err := t.Thresholds().Validate(); err != nil {
		return err
	}
	_, err := t.DueTable()
	return err
}

// LoadTunables reads a tunables file. Fields absent from the file keep
// their defaults.
func LoadTunables(path string) (Tunables, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Tunables{}, fmt.Errorf("read tunables: %w", err)
	}
	return ParseTunables(raw)
}

// ParseTunables validates raw JSON against the tunables schema and decodes
// it over the defaults.
func ParseTunables(raw []byte) (Tunables, error) {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return Tunables{}, fmt.Errorf("parse tunables: %w", err)
	}

	schema, err := tunablesValidator()
	if err != nil {
		return Tunables{}, err
	}
	if err := schema.Validate(parsed); err != nil {
		return Tunables{}, fmt.Errorf("validate tunables: %w", err)
	}

	t := DefaultTunables()
	var overlay struct {
		WeakThreshold       *float64    `json:"weakThreshold"`
		StrongThreshold     *float64    `json:"strongThreshold"`
		MasteryDueDaysTable map[int]int `json:"masteryDueDaysTable"`
	}
	if err := json.Unmarshal(raw, &overlay); err != nil {
		return Tunables{}, fmt.Errorf("decode tunables: %w", err)
	}
	if overlay.WeakThreshold != nil {
		t.WeakThreshold = *overlay.WeakThreshold
	}
	if overlay.StrongThreshold != nil {
		t.StrongThreshold = *overlay.StrongThreshold
	}
	for level, days := range overlay.MasteryDueDaysTable {
		t.MasteryDueDaysTable[level] = days
	}

	if err := t.Validate(); err != nil {
		return Tunables{}, fmt.Errorf("validate tunables: %w", err)
	}
	return t, nil
}

func tunablesValidator() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		var doc any
		if err := json.Unmarshal(tunablesSchema, &doc); err != nil {
			compileErr = fmt.Errorf("parse tunables schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(tunablesSchemaURL, doc); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiled, compileErr = c.Compile(tunablesSchemaURL)
		if compileErr != nil {
			compileErr = fmt.Errorf("compile tunables schema: %w", compileErr)
		}
	})
	return compiled, compileErr
}
