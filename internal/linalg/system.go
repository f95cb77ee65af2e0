package linalg

// System is a coefficient matrix paired with its constants vector, AX = B.
type System struct {
	Name         string `yaml:"name,omitempty" json:"name,omitempty"`
	Coefficients Matrix `yaml:"coefficients" json:"coefficients" validate:"required,min=1"`
	Constants    Vector `yaml:"constants" json:"constants" validate:"required,min=1"`
}

// Size returns the number of equations.
func (s System) Size() int { return len(s.Coefficients) }

// Clone returns a deep copy of s.
func (s System) Clone() System {
	return System{Name: s.Name, Coefficients: s.Coefficients.Clone(), Constants: s.Constants.Clone()}
}
