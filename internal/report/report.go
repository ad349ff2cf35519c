// Package report turns sweep results and chain traces into tables, PNG
// plots and terminal charts.
package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"ising-mc/internal/mc"
)

const (
	plotWidth  = 6 * vg.Inch
	plotHeight = 4 * vg.Inch
)

type series struct {
	file  string
	label string
	data  func(*mc.SweepResult) []float64
}

var sweepSeries = []series{
	{"energy", "Energy per site", func(r *mc.SweepResult) []float64 { return r.Energy }},
	{"magnetization", "Magnetization per site", func(r *mc.SweepResult) []float64 { return r.Magnetization }},
	{"specific_heat", "Specific heat", func(r *mc.SweepResult) []float64 { return r.SpecificHeat }},
	{"susceptibility", "Susceptibility", func(r *mc.SweepResult) []float64 { return r.Susceptibility }},
}

// WriteTable prints one row per temperature.
func WriteTable(w io.Writer, res *mc.SweepResult) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "T\tE\tM\tC\tX\tacc\t")
	for i := 0; i < res.Len(); i++ {
		p := res.Point(i)
		fmt.Fprintf(tw, "%.4f\t%.5f\t%.5f\t%.5f\t%.5f\t%.3f\t\n",
			p.Temperature, p.Energy, p.Magnetization, p.SpecificHeat, p.Susceptibility, p.Acceptance)
	}
	return tw.Flush()
}

// WriteSweepPlots saves one scatter plot per observable into dir, creating
// it if needed, and returns the written paths.
func WriteSweepPlots(dir string, res *mc.SweepResult) ([]string, error) {
	if res.Len() == 0 {
		return nil, fmt.Errorf("report: empty sweep result")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create plot dir: %w", err)
	}
	var paths []string
	for _, s := range sweepSeries {
		p := plot.New()
		p.Title.Text = fmt.Sprintf("%s: %s", res.Model, s.label)
		p.X.Label.Text = "Temperature"
		p.Y.Label.Text = s.label
		p.Add(plotter.NewGrid())

		pts := xys(res.Temperatures, s.data(res))
		if err := plotutil.AddScatters(p, pts); err != nil {
			return nil, fmt.Errorf("plot %s: %w", s.file, err)
		}

		path := filepath.Join(dir, fmt.Sprintf("%s_%s.png", res.Model, s.file))
		if err := p.Save(plotWidth, plotHeight, path); err != nil {
			return nil, fmt.Errorf("save %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// WriteTracePlot saves the energy and magnetization of a trace against the
// step number.
func WriteTracePlot(path string, tr *mc.Trace) error {
	if len(tr.Points) == 0 {
		return fmt.Errorf("report: empty trace")
	}
	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s N=%d T=%.3f", tr.Model, tr.Size, tr.Temperature)
	p.X.Label.Text = "Sweep"
	p.Y.Label.Text = "Per site"
	p.Add(plotter.NewGrid())

	steps := tr.Steps()
	err := plotutil.AddLines(p,
		"Energy", xys(steps, tr.Energies()),
		"Magnetization", xys(steps, tr.Magnetizations()),
	)
	if err != nil {
		return fmt.Errorf("plot trace: %w", err)
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create plot dir: %w", err)
		}
	}
	return p.Save(plotWidth, plotHeight, path)
}

// TraceChart renders the energy and magnetization series of a trace as two
// stacked terminal charts.
func TraceChart(tr *mc.Trace, width, height int) string {
	if len(tr.Points) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(asciigraph.Plot(tr.Energies(),
		asciigraph.Height(height), asciigraph.Width(width), asciigraph.Caption("Energy per site")))
	b.WriteString("\n\n")
	b.WriteString(asciigraph.Plot(tr.Magnetizations(),
		asciigraph.Height(height), asciigraph.Width(width), asciigraph.Caption("Magnetization per site")))
	b.WriteString("\n")
	return b.String()
}

// SweepChart renders one observable of a sweep against its index.
func SweepChart(res *mc.SweepResult, observable string, width, height int) (string, error) {
	for _, s := range sweepSeries {
		if s.file == observable {
			data := s.data(res)
			if len(data) == 0 {
				return "", nil
			}
			caption := fmt.Sprintf("%s, T %.3f..%.3f", s.label, res.Temperatures[0], res.Temperatures[res.Len()-1])
			return asciigraph.Plot(data,
				asciigraph.Height(height), asciigraph.Width(width), asciigraph.Caption(caption)), nil
		}
	}
	return "", fmt.Errorf("report: unknown observable %q", observable)
}

func xys(x, y []float64) plotter.XYs {
	pts := make(plotter.XYs, len(x))
	for i := range pts {
		pts[i].X = x[i]
		pts[i].Y = y[i]
	}
	return pts
}
