package trace

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/san-kum/linsolve/internal/linalg"
)

// DefaultPrecision is the number of decimals used for displayed values.
const DefaultPrecision = 6

// FormatNumber rounds v to precision decimals, collapsing magnitudes below
// linalg.Epsilon to "0".
func FormatNumber(v float64, precision int) string {
	if math.Abs(v) < linalg.Epsilon {
		return "0"
	}
	return strconv.FormatFloat(v, 'f', precision, 64)
}

// FormatVector applies FormatNumber to every entry.
func FormatVector(v linalg.Vector, precision int) []string {
	out := make([]string, len(v))
	for i, x := range v {
		out[i] = FormatNumber(x, precision)
	}
	return out
}

// Num renders an input value the shortest way that round-trips.
func Num(v float64) string {
	if v == 0 {
		return "0"
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// fixed renders v with DefaultPrecision decimals. Negative zero prints as 0.
func fixed(v float64) string {
	if v == 0 {
		v = 0
	}
	return strconv.FormatFloat(v, 'f', DefaultPrecision, 64)
}

// Var names the i-th unknown, 0-based, as x1, x2, ...
func Var(i int) string {
	return "x" + strconv.Itoa(i+1)
}

// Determinant2Expr renders det = (a)(d) - (b)(c) = v.
func Determinant2Expr(m linalg.Matrix, det float64) string {
	return fmt.Sprintf("det = (%s)(%s) - (%s)(%s) = %s",
		Num(m[0][0]), Num(m[1][1]), Num(m[0][1]), Num(m[1][0]), Num(det))
}

// Determinant3Expr renders the first-row cofactor expansion of a 3×3
// determinant, showing each 2×2 minor's value.
func Determinant3Expr(m linalg.Matrix, det float64) string {
	minors := make([]string, 3)
	for j := 0; j < 3; j++ {
		mn := linalg.Minor(m, 0, j)
		minors[j] = Num(mn[0][0]*mn[1][1] - mn[0][1]*mn[1][0])
	}
	return fmt.Sprintf("det = (%s)(%s) - (%s)(%s) + (%s)(%s) = %s",
		Num(m[0][0]), minors[0], Num(m[0][1]), minors[1], Num(m[0][2]), minors[2], Num(det))
}

// offDiagonalTerms renders " +c*operand" for every j != i where c = -row[j].
func offDiagonalTerms(row []float64, i int, operand func(j int) string) string {
	var sb strings.Builder
	for j, a := range row {
		if j == i {
			continue
		}
		c := -a
		sb.WriteByte(' ')
		if c >= 0 {
			sb.WriteByte('+')
		}
		sb.WriteString(Num(c))
		sb.WriteByte('*')
		sb.WriteString(operand(j))
	}
	return sb.String()
}

// UpdateEquation renders variable i's rearranged Jacobi update
// x_i = (b_i − Σ_{j≠i} a_ij·x_j) / a_ii.
func UpdateEquation(row []float64, b float64, i int) string {
	return fmt.Sprintf("%s = (%s%s) / %s",
		Var(i), Num(b), offDiagonalTerms(row, i, Var), Num(row[i]))
}

// IterationCalc renders the evaluation of variable i's update at sweep k
// (1-based) from the previous iterate x.
func IterationCalc(row []float64, b float64, i, k int, x linalg.Vector, result float64) string {
	operand := func(j int) string { return fixed(x[j]) }
	return fmt.Sprintf("%s^(%d) = (%s%s) / %s = %s",
		Var(i), k, Num(b), offDiagonalTerms(row, i, operand), Num(row[i]), fixed(result))
}

// SolutionLines renders "x_i = value" for every entry of x.
func SolutionLines(x linalg.Vector, precision int) []string {
	out := make([]string, len(x))
	for i, v := range x {
		out[i] = fmt.Sprintf("%s = %s", Var(i), FormatNumber(v, precision))
	}
	return out
}
