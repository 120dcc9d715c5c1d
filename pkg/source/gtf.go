package source

import (
	"github.com/pbenner/gonetics"

	"github.com/bioplotkit/hicfig/pkg/errors"
	"github.com/bioplotkit/hicfig/pkg/genome"
)

// gtfAttrs are the optional GTF attribute columns requested from gonetics.
var (
	gtfAttrNames = []string{"gene_id", "gene_name"}
	gtfAttrTypes = []string{"[]string", "[]string"}
	gtfAttrDefs  = []interface{}{"", ""}
)

// fetchGTF reads a GTF annotation file and returns one GeneFeature per
// gene_id overlapping the region. The representative record for a gene is
// its longest isoform, defined as the record with the maximal End
// coordinate; ties keep the earliest record. Exons of all isoforms sharing
// the gene_id are attached.
func fetchGTF(path string, region genome.Region) ([]GeneFeature, error) {
	granges := gonetics.GRanges{}
	if err := granges.ImportGTF(path, gtfAttrNames, gtfAttrTypes, gtfAttrDefs); err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "reading %s", path)
	}

	features := granges.GetMetaStr("feature")
	geneIDs := granges.GetMetaStr("gene_id")
	geneNames := granges.GetMetaStr("gene_name")

	// Representative record (maximal End) per gene, in first-appearance order.
	type geneAgg struct {
		feature GeneFeature
	}
	byGene := make(map[string]*geneAgg)
	var order []string

	for i := 0; i < granges.Length(); i++ {
		if granges.Seqnames[i] != region.Chrom {
			continue
		}
		from, to := granges.Ranges[i].From, granges.Ranges[i].To
		if !(from < region.End && to > region.Start) {
			continue
		}
		id := geneIDs[i]
		if id == "" {
			continue
		}
		agg, ok := byGene[id]
		if !ok {
			agg = &geneAgg{feature: GeneFeature{ID: id, Name: geneNames[i], Start: from, End: to}}
			byGene[id] = agg
			order = append(order, id)
		} else if to > agg.feature.End {
			agg.feature.Start = from
			agg.feature.End = to
			if geneNames[i] != "" {
				agg.feature.Name = geneNames[i]
			}
		}
	}
	if len(order) == 0 {
		return nil, noData(path, region)
	}

	// Second pass attaches exons for the selected genes. Exons fully
	// outside the region are dropped here so the renderer never sees
	// geometry beyond the window.
	for i := 0; i < granges.Length(); i++ {
		if granges.Seqnames[i] != region.Chrom || features[i] != "exon" {
			continue
		}
		from, to := granges.Ranges[i].From, granges.Ranges[i].To
		if !region.Overlaps(from, to) {
			continue
		}
		agg, ok := byGene[geneIDs[i]]
		if !ok {
			continue
		}
		agg.feature.Exons = append(agg.feature.Exons, Span{Start: from, End: to})
	}

	out := make([]GeneFeature, 0, len(order))
	for _, id := range order {
		g := byGene[id].feature
		if g.Name == "" {
			g.Name = g.ID
		}
		out = append(out, g)
	}
	return out, nil
}
