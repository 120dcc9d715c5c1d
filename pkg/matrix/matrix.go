// Package matrix provides the contact-matrix data model and the
// difference/ratio transform engine. Matrices are square gonum mat.Dense
// grids over a region at a fixed bin resolution, pre-normalized upstream.
package matrix

import (
	"gonum.org/v1/gonum/mat"

	"github.com/bioplotkit/hicfig/pkg/genome"
)

// Contact is a square matrix of interaction frequencies between the bins of
// a region at a fixed resolution. Bin i covers
// [Region.Start + i*Resolution, Region.Start + (i+1)*Resolution).
type Contact struct {
	Region     genome.Region
	Resolution int
	Data       *mat.Dense
}

// Bins returns the number of bins along one side of the matrix.
func (c *Contact) Bins() int {
	if c.Data == nil {
		return 0
	}
	r, _ := c.Data.Dims()
	return r
}

// SameShape reports whether two matrices cover the same region at the same
// resolution, which is required before any transform.
func (c *Contact) SameShape(other *Contact) bool {
	return c.Region == other.Region && c.Resolution == other.Resolution &&
		c.Bins() == other.Bins()
}

// Zeros returns a zero contact matrix with the same shape as c. It stands in
// for a missing control matrix, rendering the case matrix unchanged under
// the subtract operation.
func (c *Contact) Zeros() *Contact {
	n := c.Bins()
	return &Contact{
		Region:     c.Region,
		Resolution: c.Resolution,
		Data:       mat.NewDense(n, n, nil),
	}
}

// binCount returns the number of resolution-sized bins covering the region.
func binCount(region genome.Region, resolution int) int {
	return (region.Len() + resolution - 1) / resolution
}

// Source yields pre-normalized contact matrices for coordinate windows.
// Implementations own format specifics; the figure pipeline only sees
// square matrices.
type Source interface {
	// Fetch returns the square matrix over the region at the given
	// resolution.
	Fetch(region genome.Region, resolution int) (*Contact, error)
}
