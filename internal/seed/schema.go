// Package seed loads pipeline configuration (stages, lead-time rules,
// holidays) from a YAML file and applies it to the database with upsert
// semantics, so re-seeding an existing installation is safe.
package seed

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// File is the top-level YAML structure for a seed file. Stage order in the
// pipeline is the order stages appear in the list.
type File struct {
	Stages   []StageSeed   `yaml:"stages,omitempty"`
	Rules    []RuleSeed    `yaml:"lead_times,omitempty"`
	Holidays []HolidaySeed `yaml:"holidays,omitempty"`
}

// StageSeed defines one pipeline stage in the seed file.
type StageSeed struct {
	Name          string          `yaml:"name"`
	DisplayName   string          `yaml:"display_name,omitempty"`
	Default       bool            `yaml:"default,omitempty"`
	Final         bool            `yaml:"final,omitempty"`
	TargetColumns []TargetColSeed `yaml:"target_columns,omitempty"`
}

// TargetColSeed marks a job date column the stage highlights on the board.
type TargetColSeed struct {
	Column string `yaml:"column"`
	Color  string `yaml:"color,omitempty"`
}

// RuleSeed defines a lead-time rule between two stages, referenced by name.
type RuleSeed struct {
	From      string `yaml:"from"`
	To        string `yaml:"to"`
	Days      int    `yaml:"days"`
	Direction string `yaml:"direction,omitempty"` // defaults to "before"
	Active    *bool  `yaml:"active,omitempty"`    // defaults to true
}

// HolidaySeed defines one non-working date (YYYY-MM-DD).
type HolidaySeed struct {
	Date   string `yaml:"date"`
	Name   string `yaml:"name,omitempty"`
	Public *bool  `yaml:"public,omitempty"` // defaults to true
}

// Load reads and parses a seed file from the given path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading seed file: %w", err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing seed YAML: %w", err)
	}
	return &f, nil
}
