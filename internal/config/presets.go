package config

import (
	"sort"

	"github.com/san-kum/linsolve/internal/linalg"
)

type Preset struct {
	Description string
	System      linalg.System
}

var Presets = map[string]Preset{
	"textbook2": {
		Description: "2x2 system with solution (2, 1)",
		System:      linalg.System{Coefficients: linalg.Matrix{{2, 3}, {1, -1}}, Constants: linalg.Vector{7, 1}},
	},
	"dominant3": {
		Description: "strictly diagonally dominant tridiagonal 3x3",
		System:      linalg.System{Coefficients: linalg.Matrix{{4, -1, 0}, {-1, 4, -1}, {0, -1, 4}}, Constants: linalg.Vector{15, 10, 10}},
	},
	"slow3": {
		Description: "dominant 3x3 that needs many Jacobi sweeps",
		System:      linalg.System{Coefficients: linalg.Matrix{{3, 1, 1}, {1, 3, 1}, {1, 1, 3}}, Constants: linalg.Vector{5, 5, 5}},
	},
	"singular2": {
		Description: "singular 2x2 (second row is twice the first)",
		System:      linalg.System{Coefficients: linalg.Matrix{{1, 2}, {2, 4}}, Constants: linalg.Vector{1, 2}},
	},
	"nondominant2": {
		Description: "2x2 where Jacobi diverges",
		System:      linalg.System{Coefficients: linalg.Matrix{{1, 2}, {3, 1}}, Constants: linalg.Vector{1, 1}},
	},
	"identity3": {
		Description: "default input: identity matrix with unit constants",
		System:      identitySystem(3),
	},
}

func identitySystem(n int) linalg.System {
	a, b := linalg.DefaultSystem(n)
	return linalg.System{Coefficients: a, Constants: b}
}

// GetPreset returns a copy of the named system.
func GetPreset(name string) (linalg.System, bool) {
	p, ok := Presets[name]
	if !ok {
		return linalg.System{}, false
	}
	sys := p.System.Clone()
	sys.Name = name
	return sys, true
}

// ListPresets returns preset names in sorted order.
func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
