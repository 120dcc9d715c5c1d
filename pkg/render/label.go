package render

import "gonum.org/v1/plot"

// addRowLabel names a row panel. Labels render as compact titles so they
// never collide with the data area.
func addRowLabel(p *plot.Plot, label string) {
	if label == "" {
		return
	}
	p.Title.Text = label
	p.Title.TextStyle.Font.Size = rowLabelFontSize
}

const rowLabelFontSize = 8
