package matrix

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/bioplotkit/hicfig/pkg/errors"
)

// Op is the binary operation applied between the primary and control
// matrix.
type Op string

// Method selects how a divide ratio is post-processed.
type Method string

const (
	OpSubtract Op = "subtract"
	OpDivide   Op = "divide"

	MethodRaw     Method = "raw"
	MethodLog2    Method = "log2"
	MethodAdd1    Method = "add1"
	MethodLog2Add Method = "log2_add1"
)

// Result carries the comparison matrix plus the symmetric color bounds
// derived from it. Bounds are unset when the matrix has no finite cell,
// in which case the renderer falls back to auto-scaling.
type Result struct {
	Contact *Contact
	VMin    float64
	VMax    float64
	HasVLim bool
}

// Transform computes the comparison matrix between a and b. A nil b is
// treated as an all-zero matrix of a's shape, which makes single-sample
// subtract a passthrough of a.
func Transform(a, b *Contact, op Op, method Method) (*Result, error) {
	if a == nil {
		return nil, errors.New(errors.ErrCodeInternal, "transform called without a primary matrix")
	}
	if b == nil {
		b = a.Zeros()
	}
	if !a.SameShape(b) {
		ra, ca := a.Data.Dims()
		rb, cb := b.Data.Dims()
		return nil, errors.New(errors.ErrCodeInvalidParameter,
			"matrix shapes differ: %dx%d vs %dx%d", ra, ca, rb, cb)
	}

	var cell func(x, y float64) float64
	switch op {
	case OpSubtract:
		cell = func(x, y float64) float64 { return x - y }
	case OpDivide:
		switch method {
		case MethodRaw:
			cell = func(x, y float64) float64 { return finiteOrZero(x / y) }
		case MethodLog2:
			cell = func(x, y float64) float64 { return log2Ratio(x / y) }
		case MethodAdd1:
			cell = func(x, y float64) float64 { return finiteOrZero((x + 1) / (y + 1)) }
		case MethodLog2Add:
			cell = func(x, y float64) float64 { return log2Ratio((x + 1) / (y + 1)) }
		default:
			return nil, errors.New(errors.ErrCodeInvalidParameter,
				"unknown divide method %q (allowed: raw, log2, add1, log2_add1)", method)
		}
	default:
		return nil, errors.New(errors.ErrCodeInvalidParameter,
			"unknown operation %q (allowed: subtract, divide)", op)
	}

	rows, cols := a.Data.Dims()
	out := mat.NewDense(rows, cols, nil)
	vmax := math.Inf(-1)
	hasFinite := false
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			v := cell(a.Data.At(i, j), b.Data.At(i, j))
			out.Set(i, j, v)
			if !math.IsNaN(v) && !math.IsInf(v, 0) {
				hasFinite = true
				if abs := math.Abs(v); abs > vmax {
					vmax = abs
				}
			}
		}
	}

	res := &Result{
		Contact: &Contact{Region: a.Region, Resolution: a.Resolution, Data: out},
	}
	if hasFinite {
		res.VMax = vmax
		res.VMin = -vmax
		res.HasVLim = true
	}
	return res, nil
}

// finiteOrZero maps NaN and ±Inf to 0, keeping raw ratio heatmaps
// renderable when the control matrix has empty bins.
func finiteOrZero(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// log2Ratio masks non-positive ratios to NaN before taking the log, and
// lets an already-NaN ratio propagate.
func log2Ratio(r float64) float64 {
	if math.IsNaN(r) || r <= 0 {
		return math.NaN()
	}
	return math.Log2(r)
}
