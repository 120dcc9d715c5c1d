// Package layout turns track inventories into row plans and packs
// overlapping gene models into non-colliding vertical lanes.
package layout

import "github.com/bioplotkit/hicfig/pkg/source"

// StackedGene is a gene feature with its assigned vertical offset.
// Overlapping genes never share an offset.
type StackedGene struct {
	Gene   source.GeneFeature
	Offset float64
}

// StackGenes assigns each gene the lowest offset that clears every
// previously placed overlapping gene. Genes are processed in input order
// and never moved once placed.
func StackGenes(genes []source.GeneFeature, step float64) []StackedGene {
	placed := make([]StackedGene, 0, len(genes))
	for _, g := range genes {
		offset := 0.0
		for _, p := range placed {
			if g.Start < p.Gene.End && g.End > p.Gene.Start {
				if candidate := p.Offset + step; candidate > offset {
					offset = candidate
				}
			}
		}
		placed = append(placed, StackedGene{Gene: g, Offset: offset})
	}
	return placed
}
