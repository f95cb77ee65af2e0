package export

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/san-kum/linsolve/internal/linalg"
	"github.com/san-kum/linsolve/internal/trace"
)

type ExportData struct {
	Name         string        `json:"name,omitempty"`
	Method       trace.Method  `json:"method"`
	Coefficients linalg.Matrix `json:"coefficients"`
	Constants    linalg.Vector `json:"constants"`
	MaxErrors    []float64     `json:"maxErrors,omitempty"`
	Result       trace.Result  `json:"result"`
}

func NewExportData(sys linalg.System, result trace.Result) ExportData {
	return ExportData{
		Name:         sys.Name,
		Method:       result.Method,
		Coefficients: sys.Coefficients,
		Constants:    sys.Constants,
		MaxErrors:    result.MaxErrors(),
		Result:       result,
	}
}

func ExportJSON(path string, sys linalg.System, result trace.Result) error {
	data := NewExportData(sys, result)

	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s result: %w", result.Method, err)
	}

	return os.WriteFile(path, jsonData, 0644)
}
