// Package report emits the convergence results of a run as CSV and as a
// log-log error plot.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/toruskit/fredholm/solver"
)

// WriteCSV writes one row per grid size: n, error, cond.
func WriteCSV(out io.Writer, results []solver.Result) error {
	w := csv.NewWriter(out)
	if err := w.Write([]string{"n", "error", "cond"}); err != nil {
		return fmt.Errorf("report: writing csv header: %w", err)
	}
	for _, res := range results {
		record := []string{
			strconv.Itoa(res.N),
			strconv.FormatFloat(res.Err, 'g', -1, 64),
			strconv.FormatFloat(res.Cond, 'g', -1, 64),
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("report: writing csv record: %w", err)
		}
	}
	w.Flush()
	return w.Error()
}

// SavePlot renders error versus grid size on log-log axes. The x axis
// carries the grid sizes actually solved.
func SavePlot(path string, results []solver.Result) error {
	if len(results) == 0 {
		return fmt.Errorf("report: no results to plot")
	}

	p := plot.New()
	p.Title.Text = "Fredholm solve on the torus"
	p.X.Label.Text = "n"
	p.Y.Label.Text = "Error"
	p.X.Scale = plot.LogScale{}
	p.Y.Scale = plot.LogScale{}
	p.X.Tick.Marker = plot.LogTicks{Prec: -1}
	p.Y.Tick.Marker = plot.LogTicks{Prec: -1}

	pts := make(plotter.XYs, len(results))
	for i, res := range results {
		pts[i].X = float64(res.N)
		pts[i].Y = res.Err
	}
	if err := plotutil.AddLinePoints(p, "mean abs error", pts); err != nil {
		return fmt.Errorf("report: building plot: %w", err)
	}

	if err := p.Save(6*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("report: saving plot: %w", err)
	}
	return nil
}
