package solver_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/linsolve/internal/analysis"
	"github.com/san-kum/linsolve/internal/jacobi"
	"github.com/san-kum/linsolve/internal/linalg"
	"github.com/san-kum/linsolve/internal/solver"
	"github.com/san-kum/linsolve/internal/trace"
)

var _ = Describe("entry points", func() {
	var (
		tridiag  linalg.Matrix
		tridiagB linalg.Vector
	)

	BeforeEach(func() {
		tridiag = linalg.Matrix{{4, -1, 0}, {-1, 4, -1}, {0, -1, 4}}
		tridiagB = linalg.Vector{15, 10, 10}
	})

	Describe("SolveDirect", func() {
		It("solves the textbook 2x2 system", func() {
			res := solver.SolveDirect(linalg.Matrix{{2, 3}, {1, -1}}, linalg.Vector{7, 1})
			Expect(res.Success).To(BeTrue())
			Expect(*res.Determinant).To(Equal(-5.0))
			Expect(res.Solution[0]).To(BeNumerically("~", 2, 1e-12))
			Expect(res.Solution[1]).To(BeNumerically("~", 1, 1e-12))
		})

		It("reports a singular matrix as a failed result", func() {
			res := solver.SolveDirect(linalg.Matrix{{1, 2}, {2, 4}}, linalg.Vector{1, 2})
			Expect(res.Success).To(BeFalse())
			Expect(res.Error).To(ContainSubstring("singular"))
			Expect(res.Steps).To(HaveLen(2))
		})

		It("is deterministic", func() {
			Expect(solver.SolveDirect(tridiag, tridiagB)).To(Equal(solver.SolveDirect(tridiag, tridiagB)))
		})
	})

	Describe("SolveJacobi", func() {
		It("converges to the direct solution on a dominant system", func() {
			want := solver.SolveDirect(tridiag, tridiagB)
			res := solver.SolveJacobi(tridiag, tridiagB, 1e-6, 100)

			Expect(*res.Converged).To(BeTrue())
			for i := range want.Solution {
				Expect(res.Solution[i]).To(BeNumerically("~", want.Solution[i], 1e-4))
			}
		})

		It("folds a panic on ragged input into a failed result", func() {
			res := solver.SolveJacobi(linalg.Matrix{{4, 1}, {1}}, linalg.Vector{1, 1}, 1e-6, 10)
			Expect(res.Success).To(BeFalse())
			Expect(res.Method).To(Equal(trace.MethodJacobi))
			Expect(res.Error).To(HavePrefix("invalid input"))
		})

		It("is deterministic", func() {
			Expect(solver.SolveJacobi(tridiag, tridiagB, 1e-6, 100)).
				To(Equal(solver.SolveJacobi(tridiag, tridiagB, 1e-6, 100)))
		})
	})

	Describe("ValidateJacobiInput", func() {
		It("gives a distinct message per failure", func() {
			square := solver.ValidateJacobiInput(linalg.Matrix{{1, 2, 3}, {1, 2, 3}}, linalg.Vector{1, 2})
			length := solver.ValidateJacobiInput(linalg.Matrix{{1, 2}, {3, 4}}, linalg.Vector{1})
			diag := solver.ValidateJacobiInput(linalg.Matrix{{1, 2}, {3, 0}}, linalg.Vector{1, 1})

			Expect(square.Valid || length.Valid || diag.Valid).To(BeFalse())
			Expect(square.Error).To(Equal("Coefficient matrix must be square"))
			Expect(length.Error).To(Equal("Constants vector length must match matrix size"))
			Expect(diag.Error).To(ContainSubstring("(2, 2)"))
		})
	})

	Describe("CheckDiagonalDominance", func() {
		It("matches the reference examples", func() {
			Expect(solver.CheckDiagonalDominance(tridiag)).To(BeTrue())
			Expect(solver.CheckDiagonalDominance(linalg.Matrix{{1, 2}, {3, 1}})).To(BeFalse())
		})
	})
})

var _ = Describe("Registry", func() {
	ctx := context.Background()
	sys := linalg.System{
		Coefficients: linalg.Matrix{{4, -1, 0}, {-1, 4, -1}, {0, -1, 4}},
		Constants:    linalg.Vector{15, 10, 10},
	}

	It("dispatches by method name", func() {
		res, err := solver.Solve(ctx, solver.Request{Method: trace.MethodDirect, System: sys})
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Method).To(Equal(trace.MethodDirect))

		res, err = solver.Solve(ctx, solver.Request{Method: trace.MethodJacobi, System: sys, MaxIterations: 100})
		Expect(err).NotTo(HaveOccurred())
		Expect(*res.Converged).To(BeTrue())
		Expect(*res.Tolerance).To(Equal(1e-6))
	})

	It("rejects unknown methods", func() {
		_, err := solver.Solve(ctx, solver.Request{Method: "gauss-seidel", System: sys})
		Expect(err).To(MatchError(ContainSubstring("unknown method")))
	})

	It("runs the validator before Jacobi", func() {
		bad := linalg.System{Coefficients: linalg.Matrix{{0, 1}, {1, 1}}, Constants: linalg.Vector{1, 1}}
		res, err := solver.Solve(ctx, solver.Request{Method: trace.MethodJacobi, System: bad, MaxIterations: 10})
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Success).To(BeFalse())
		Expect(res.Steps).To(BeEmpty())
		Expect(res.Error).To(ContainSubstring("(1, 1)"))
	})

	It("reports Jacobi progress to the request observer", func() {
		c := analysis.NewCollector(analysis.DefaultMetrics()...)
		res, err := solver.Solve(ctx, solver.Request{Method: trace.MethodJacobi, System: sys, MaxIterations: 100, Observer: c})
		Expect(err).NotTo(HaveOccurred())
		Expect(*res.Converged).To(BeTrue())

		Expect(c.Phases()).To(Equal([]jacobi.Phase{
			jacobi.PhaseSetup,
			jacobi.PhaseRewriteEquations,
			jacobi.PhaseInitialGuess,
			jacobi.PhaseIterating,
			jacobi.PhaseConverged,
		}))
		Expect(c.Values()["sweeps"]).To(BeNumerically("==", *res.IterationCount))
	})

	It("skips the observer when validation fails", func() {
		c := analysis.NewCollector()
		bad := linalg.System{Coefficients: linalg.Matrix{{0, 1}, {1, 1}}, Constants: linalg.Vector{1, 1}}
		_, err := solver.Solve(ctx, solver.Request{Method: trace.MethodJacobi, System: bad, Observer: c})
		Expect(err).NotTo(HaveOccurred())
		Expect(c.Phases()).To(BeEmpty())
	})

	It("lists methods sorted", func() {
		Expect(solver.NewRegistry().ListMethods()).To(Equal([]string{"direct", "jacobi"}))
	})

	It("stops on a cancelled context", func() {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		_, err := solver.Solve(cctx, solver.Request{Method: trace.MethodDirect, System: sys})
		Expect(err).To(MatchError(context.Canceled))
	})
})

var _ = Describe("Batch", func() {
	It("keeps results aligned with requests", func() {
		reqs := []solver.Request{
			{Method: trace.MethodDirect, System: linalg.System{Coefficients: linalg.Matrix{{2, 3}, {1, -1}}, Constants: linalg.Vector{7, 1}}},
			{Method: trace.MethodDirect, System: linalg.System{Coefficients: linalg.Matrix{{1, 2}, {2, 4}}, Constants: linalg.Vector{1, 2}}},
			{Method: trace.MethodJacobi, MaxIterations: 100, System: linalg.System{
				Coefficients: linalg.Matrix{{4, -1, 0}, {-1, 4, -1}, {0, -1, 4}}, Constants: linalg.Vector{15, 10, 10}}},
		}
		results, err := solver.Batch(context.Background(), reqs, 2)
		Expect(err).NotTo(HaveOccurred())
		Expect(results).To(HaveLen(3))
		Expect(results[0].Success).To(BeTrue())
		Expect(results[1].Success).To(BeFalse())
		Expect(results[2].Method).To(Equal(trace.MethodJacobi))
	})

	It("fails on an unknown method", func() {
		_, err := solver.Batch(context.Background(), []solver.Request{{Method: "sor"}}, 0)
		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("Compare", func() {
	It("agrees on a dominant system", func() {
		sys := linalg.System{
			Coefficients: linalg.Matrix{{4, -1, 0}, {-1, 4, -1}, {0, -1, 4}},
			Constants:    linalg.Vector{15, 10, 10},
		}
		c, err := solver.Compare(context.Background(), sys, 1e-6, 100)
		Expect(err).NotTo(HaveOccurred())
		Expect(c.Agree).To(BeTrue())
		Expect(*c.MaxDifference).To(BeNumerically("<", 1e-4))
	})

	It("leaves the difference unset when a method fails", func() {
		sys := linalg.System{Coefficients: linalg.Matrix{{1, 2}, {2, 4}}, Constants: linalg.Vector{1, 2}}
		c, err := solver.Compare(context.Background(), sys, 1e-6, 100)
		Expect(err).NotTo(HaveOccurred())
		Expect(c.MaxDifference).To(BeNil())
		Expect(c.Agree).To(BeFalse())
	})

	It("solves through the receiving registry", func() {
		reg := solver.NewRegistry()
		reg.Register(trace.MethodDirect, func(_ context.Context, req solver.Request) trace.Result {
			return trace.Result{Method: trace.MethodDirect, Success: true, Solution: linalg.Vector{0, 0}}
		})

		sys := linalg.System{Coefficients: linalg.Matrix{{4, -1}, {-1, 4}}, Constants: linalg.Vector{3, 3}}
		c, err := reg.Compare(context.Background(), sys, 1e-10, 100)
		Expect(err).NotTo(HaveOccurred())
		Expect(c.Agree).To(BeFalse())
		Expect(*c.MaxDifference).To(BeNumerically("~", 1, 1e-6))
	})
})
