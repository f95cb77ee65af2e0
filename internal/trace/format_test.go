package trace

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/linsolve/internal/linalg"
)

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   float64
		prec int
		want string
	}{
		{2, 6, "2.000000"},
		{-1.23456789, 6, "-1.234568"},
		{1e-11, 6, "0"},
		{-5e-11, 6, "0"},
		{0.5, 4, "0.5000"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatNumber(tt.in, tt.prec))
	}
}

func TestDeterminantExpressions(t *testing.T) {
	assert.Equal(t, "det = (2)(-1) - (3)(1) = -5",
		Determinant2Expr(linalg.Matrix{{2, 3}, {1, -1}}, -5))

	m := linalg.Matrix{{4, -1, 0}, {-1, 4, -1}, {0, -1, 4}}
	assert.Equal(t, "det = (4)(15) - (-1)(-4) + (0)(1) = 56", Determinant3Expr(m, 56))
}

func TestUpdateEquation(t *testing.T) {
	row := []float64{4, -1, 0}
	assert.Equal(t, "x1 = (15 +1*x2 +0*x3) / 4", UpdateEquation(row, 15, 0))
	assert.Equal(t, "x2 = (10 -2*x1 -0.5*x3) / 4", UpdateEquation([]float64{2, 4, 0.5}, 10, 1))
}

func TestIterationCalc(t *testing.T) {
	row := []float64{4, -1, 0}
	got := IterationCalc(row, 15, 0, 1, linalg.Vector{0, 0, 0}, 3.75)
	assert.Equal(t, "x1^(1) = (15 +1*0.000000 +0*0.000000) / 4 = 3.750000", got)
}

func TestIterationCalcNegativeZero(t *testing.T) {
	row := []float64{-2, 1}
	negZero := math.Copysign(0, -1)
	got := IterationCalc(row, 0, 0, 1, linalg.Vector{negZero, negZero}, negZero)
	assert.Equal(t, "x1^(1) = (0 -1*0.000000) / -2 = 0.000000", got)
}

func TestSolutionLines(t *testing.T) {
	assert.Equal(t, []string{"x1 = 2.000000", "x2 = 0"}, SolutionLines(linalg.Vector{2, 1e-12}, 6))
}

func TestLogWithDoesNotAlias(t *testing.T) {
	base := Log{}.With(Step{Title: "a"})
	left := base.With(Step{Title: "b"})
	right := base.With(Step{Title: "c"})

	assert.Equal(t, 1, base.Len())
	assert.Equal(t, "b", left.Steps()[1].Title)
	assert.Equal(t, "c", right.Steps()[1].Title)

	steps := left.Steps()
	steps[0].Title = "mutated"
	assert.Equal(t, "a", left.Steps()[0].Title)

	assert.NotNil(t, Log{}.Steps())
}

func TestValueJSON(t *testing.T) {
	data, err := json.Marshal(Step{Title: "t", Description: "d", Result: ScalarValue(-5)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"title":"t","description":"d","result":-5}`, string(data))

	var s Step
	require.NoError(t, json.Unmarshal([]byte(`{"title":"t","description":"d","result":[2,1]}`), &s))
	require.NotNil(t, s.Result)
	assert.True(t, s.Result.IsVector())
	assert.Equal(t, linalg.Vector{2, 1}, s.Result.Vector)
}

func TestResultMaxErrors(t *testing.T) {
	r := Result{Steps: []Step{
		{Title: "setup"},
		{Title: "iterations", Iterations: []Iteration{{Index: 1, MaxError: 3}, {Index: 2, MaxError: 0.5}}},
	}}
	assert.Equal(t, []float64{3, 0.5}, r.MaxErrors())
	assert.Len(t, r.Iterations(), 2)
}
