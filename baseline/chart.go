package baseline

import (
	"io"

	"github.com/wcharczuk/go-chart/v2"
)

// RenderChart writes a PNG bar chart of the compression ratio of each
// result.
func RenderChart(w io.Writer, title string, results []Result) error {
	bars := make([]chart.Value, 0, len(results))
	for _, r := range results {
		bars = append(bars, chart.Value{
			Label: r.Name,
			Value: r.Ratio(),
		})
	}

	graph := chart.BarChart{
		Title: title,
		Background: chart.Style{
			Padding: chart.Box{Top: 40},
		},
		Height:   512,
		BarWidth: 60,
		Bars:     bars,
	}
	return graph.Render(chart.PNG, w)
}
