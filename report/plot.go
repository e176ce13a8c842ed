package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// PlotHistory renders one line per state showing its utility estimate at every
// iteration, as a standalone HTML page. States are drawn in the given order.
func PlotHistory[S comparable](w io.Writer, title string, states []S, history map[S][]float64) error {
	numSteps := 0
	for _, s := range states {
		numSteps = max(numSteps, len(history[s]))
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: title,
			Width:     "1600px",
			Height:    "800px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title: "Utility of each state against iteration",
		}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Iteration"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Utility estimate"}),
	)

	steps := make([]string, numSteps)
	for i := range steps {
		steps[i] = fmt.Sprintf("%d", i)
	}
	line.SetXAxis(steps)

	for _, s := range states {
		items := make([]opts.LineData, 0, len(history[s]))
		for _, u := range history[s] {
			items = append(items, opts.LineData{Value: u})
		}
		line.AddSeries(fmt.Sprint(s), items)
	}

	page := components.NewPage()
	page.PageTitle = title
	page.AddCharts(line)
	return page.Render(w)
}

// SavePlot writes the utility plot to dir/name, creating dir if needed.
func SavePlot[S comparable](dir, name, title string, states []S, history map[S][]float64) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return err
	}
	defer f.Close()

	return PlotHistory(f, title, states, history)
}
