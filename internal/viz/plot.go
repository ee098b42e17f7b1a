package viz

import (
	"fmt"
	"strings"

	"github.com/guptarohit/asciigraph"
)

// PlotSeries renders one probe component over time as an ASCII graph.
func PlotSeries(values []float64, caption string, height, width int) string {
	if len(values) == 0 {
		return "no data"
	}

	// Downsample long runs to the terminal width.
	sampled := values
	if width > 0 && len(values) > width {
		step := len(values) / width
		sampled = make([]float64, 0, width)
		for i := 0; i < len(values); i += step {
			sampled = append(sampled, values[i])
		}
	}

	graph := asciigraph.Plot(sampled,
		asciigraph.Height(height),
		asciigraph.Caption(caption),
	)
	return GraphStyle.Render(graph)
}

// Summary renders a label/value table for a finished run.
func Summary(title string, fields [][2]string) string {
	var b strings.Builder
	b.WriteString(HeaderStyle.Render(title))
	b.WriteString("\n")
	for _, f := range fields {
		b.WriteString(fmt.Sprintf("%s %s\n",
			LabelStyle.Render(f[0]), ValueStyle.Render(f[1])))
	}
	return b.String()
}
