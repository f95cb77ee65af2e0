package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/san-kum/linsolve/internal/analysis"
	"github.com/san-kum/linsolve/internal/linalg"
	"github.com/san-kum/linsolve/internal/trace"
)

const (
	metadataFile   = "metadata.json"
	resultFile     = "result.json"
	iterationsFile = "iterations.csv"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID         string             `json:"id"`
	Name       string             `json:"name,omitempty"`
	Method     trace.Method       `json:"method"`
	Timestamp  time.Time          `json:"timestamp"`
	Size       int                `json:"size"`
	Success    bool               `json:"success"`
	Error      string             `json:"error,omitempty"`
	Converged  *bool              `json:"converged,omitempty"`
	Iterations *int               `json:"iterations,omitempty"`
	Tolerance  *float64           `json:"tolerance,omitempty"`
	Metrics    map[string]float64 `json:"metrics"`
}

// Run is a stored run as loaded back from disk.
type Run struct {
	Meta   RunMetadata   `json:"metadata"`
	System linalg.System `json:"system"`
	Result trace.Result  `json:"result"`
}

// Save writes a run directory for result. Both JSON documents are encoded
// before anything touches disk, and a failed save leaves no run behind.
func (s *Store) Save(sys linalg.System, result trace.Result) (string, error) {
	runID := fmt.Sprintf("%s_%s", result.Method, uuid.NewString())

	meta := RunMetadata{
		ID:         runID,
		Name:       sys.Name,
		Method:     result.Method,
		Timestamp:  time.Now(),
		Size:       sys.Size(),
		Success:    result.Success,
		Error:      result.Error,
		Converged:  result.Converged,
		Iterations: result.IterationCount,
		Tolerance:  result.Tolerance,
		Metrics:    analysis.Summarize(sys, result),
	}

	metaData, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode metadata: %w", err)
	}
	runData, err := json.MarshalIndent(Run{Meta: meta, System: sys, Result: result}, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode result: %w", err)
	}

	runDir := filepath.Join(s.baseDir, runID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	if err := writeRun(runDir, metaData, runData, result); err != nil {
		os.RemoveAll(runDir)
		return "", err
	}
	return runID, nil
}

func writeRun(runDir string, metaData, runData []byte, result trace.Result) error {
	if err := os.WriteFile(filepath.Join(runDir, resultFile), runData, 0644); err != nil {
		return fmt.Errorf("write result: %w", err)
	}
	if result.Method == trace.MethodJacobi {
		if err := writeIterations(filepath.Join(runDir, iterationsFile), result.Iterations()); err != nil {
			return fmt.Errorf("write iterations: %w", err)
		}
	}
	// metadata last: List only reports runs whose metadata exists
	if err := os.WriteFile(filepath.Join(runDir, metadataFile), metaData, 0644); err != nil {
		return fmt.Errorf("write metadata: %w", err)
	}
	return nil
}

func writeIterations(path string, its []trace.Iteration) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := []string{"iteration", "max_error"}
	if len(its) > 0 {
		for i := range its[0].NewValues {
			header = append(header, trace.Var(i))
		}
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, it := range its {
		row := []string{
			strconv.Itoa(it.Index),
			strconv.FormatFloat(it.MaxError, 'g', -1, 64),
		}
		for _, v := range it.NewValues {
			row = append(row, strconv.FormatFloat(v, 'g', -1, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

// List returns the stored runs, newest first. Directories without readable
// metadata are skipped.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.After(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	var meta RunMetadata
	if err := readJSON(filepath.Join(s.baseDir, runID, metadataFile), &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadResult returns the full stored run including its trace.
func (s *Store) LoadResult(runID string) (*Run, error) {
	var run Run
	if err := readJSON(filepath.Join(s.baseDir, runID, resultFile), &run); err != nil {
		return nil, err
	}
	return &run, nil
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

// LoadIterations reads the per-sweep max errors and iterates of a Jacobi run.
func (s *Store) LoadIterations(runID string) ([]float64, []linalg.Vector, error) {
	csvPath := filepath.Join(s.baseDir, runID, iterationsFile)
	file, err := os.Open(csvPath)
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, err
	}

	if len(records) < 2 {
		return []float64{}, []linalg.Vector{}, nil
	}

	errs := make([]float64, 0, len(records)-1)
	values := make([]linalg.Vector, 0, len(records)-1)

	for _, record := range records[1:] {
		if len(record) < 2 {
			continue
		}

		e, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			continue
		}

		x := make(linalg.Vector, 0, len(record)-2)
		for _, field := range record[2:] {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				continue
			}
			x = append(x, v)
		}
		errs = append(errs, e)
		values = append(values, x)
	}

	return errs, values, nil
}
