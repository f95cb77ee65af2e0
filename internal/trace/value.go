package trace

import (
	"bytes"
	"encoding/json"

	"github.com/san-kum/linsolve/internal/linalg"
)

// Value is the result of a stage: either a scalar or a vector. It encodes as
// a JSON number or array.
type Value struct {
	Scalar *float64
	Vector linalg.Vector
}

// ScalarValue wraps a scalar result.
func ScalarValue(f float64) *Value { return &Value{Scalar: &f} }

// VectorValue wraps a vector result. The vector is copied.
func VectorValue(v linalg.Vector) *Value { return &Value{Vector: v.Clone()} }

// IsVector reports whether v holds a vector.
func (v Value) IsVector() bool { return v.Scalar == nil }

func (v Value) MarshalJSON() ([]byte, error) {
	if v.Scalar != nil {
		return json.Marshal(*v.Scalar)
	}
	if v.Vector == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]float64(v.Vector))
}

func (v *Value) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		var vec []float64
		if err := json.Unmarshal(data, &vec); err != nil {
			return err
		}
		*v = Value{Vector: vec}
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*v = Value{Scalar: &f}
	return nil
}
