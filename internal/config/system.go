package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/linsolve/internal/linalg"
)

// BatchEntry is one system of a batch file. Empty fields fall back to the
// active Config.
type BatchEntry struct {
	linalg.System `yaml:",inline"`
	Method        string  `yaml:"method,omitempty"`
	Tolerance     float64 `yaml:"tolerance,omitempty"`
	MaxIterations *int    `yaml:"max_iterations,omitempty"`
}

type batchFile struct {
	Systems []BatchEntry `yaml:"systems"`
}

// LoadSystem reads a single system from a yaml file:
//
//	coefficients: [[2, 3], [1, -1]]
//	constants: [7, 1]
func LoadSystem(path string) (linalg.System, error) {
	var sys linalg.System
	data, err := os.ReadFile(path)
	if err != nil {
		return sys, err
	}
	if err := yaml.Unmarshal(data, &sys); err != nil {
		return sys, fmt.Errorf("parse system %s: %w", path, err)
	}
	if err := validate.Struct(sys); err != nil {
		return sys, fmt.Errorf("invalid system %s: %w", path, err)
	}
	return sys, nil
}

// LoadBatch reads a yaml file holding a list of systems under "systems".
func LoadBatch(path string) ([]BatchEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var bf batchFile
	if err := yaml.Unmarshal(data, &bf); err != nil {
		return nil, fmt.Errorf("parse batch %s: %w", path, err)
	}
	if len(bf.Systems) == 0 {
		return nil, fmt.Errorf("batch %s: no systems", path)
	}
	for i, e := range bf.Systems {
		if err := validate.Struct(e.System); err != nil {
			return nil, fmt.Errorf("batch %s: system %d: %w", path, i+1, err)
		}
	}
	return bf.Systems, nil
}

// ParseMatrix parses rows separated by ';' and entries by ',', e.g.
// "2,3;1,-1". Rows may have different lengths; shape checks belong to the
// solvers.
func ParseMatrix(s string) (linalg.Matrix, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("empty matrix")
	}
	var m linalg.Matrix
	for i, rowStr := range strings.Split(s, ";") {
		row, err := ParseVector(rowStr)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		m = append(m, row)
	}
	return m, nil
}

// ParseVector parses comma-separated numbers.
func ParseVector(s string) (linalg.Vector, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("empty vector")
	}
	parts := strings.Split(s, ",")
	v := make(linalg.Vector, len(parts))
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i+1, err)
		}
		v[i] = f
	}
	return v, nil
}
