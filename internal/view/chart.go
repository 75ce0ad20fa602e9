package view

import (
	"fmt"
	"math"

	"task-dashboard/internal/domain"
)

var (
	AdminPalette    = []string{"#FBBF24", "#3B82F6", "#10B981"}
	EmployeePalette = []string{"#FFBB28", "#0088FE", "#00C49F"}
)

const (
	chartSize   = 200.0
	chartCenter = chartSize / 2
	outerRadius = 80.0
)

type ChartSlice struct {
	Name    string
	Value   int
	Percent int
	Color   string
	Path    string
	LabelX  float64
	LabelY  float64
}

type Chart struct {
	Size   float64
	Slices []ChartSlice
	Total  int
}

func (c Chart) Empty() bool { return c.Total == 0 }

// PieChart lays out the summary as SVG arc paths. innerRadius > 0 draws a donut.
func PieChart(s domain.Summary, palette []string, innerRadius float64) Chart {
	series := s.Slices()

	total := 0
	for _, sl := range series {
		total += sl.Value
	}

	chart := Chart{Size: chartSize, Total: total}
	angle := -math.Pi / 2
	for i, sl := range series {
		cs := ChartSlice{
			Name:  sl.Name,
			Value: sl.Value,
			Color: palette[i%len(palette)],
		}
		if total > 0 && sl.Value > 0 {
			sweep := 2 * math.Pi * float64(sl.Value) / float64(total)
			cs.Percent = int(math.Round(100 * float64(sl.Value) / float64(total)))
			cs.Path = arcPath(angle, angle+sweep, innerRadius)

			mid := angle + sweep/2
			labelR := outerRadius + 12
			cs.LabelX = round2(chartCenter + labelR*math.Cos(mid))
			cs.LabelY = round2(chartCenter + labelR*math.Sin(mid))
			angle += sweep
		}
		chart.Slices = append(chart.Slices, cs)
	}
	return chart
}

func arcPath(from, to, inner float64) string {
	// a single full-circle arc is degenerate in SVG, so split it in two
	if to-from >= 2*math.Pi-1e-9 {
		mid := from + math.Pi
		return arcPath(from, mid, inner) + " " + arcPath(mid, to, inner)
	}

	large := 0
	if to-from > math.Pi {
		large = 1
	}

	x0, y0 := point(outerRadius, from)
	x1, y1 := point(outerRadius, to)

	if inner <= 0 {
		return fmt.Sprintf("M %.2f %.2f L %.2f %.2f A %.2f %.2f 0 %d 1 %.2f %.2f Z",
			chartCenter, chartCenter, x0, y0, outerRadius, outerRadius, large, x1, y1)
	}

	ix0, iy0 := point(inner, to)
	ix1, iy1 := point(inner, from)
	return fmt.Sprintf("M %.2f %.2f A %.2f %.2f 0 %d 1 %.2f %.2f L %.2f %.2f A %.2f %.2f 0 %d 0 %.2f %.2f Z",
		x0, y0, outerRadius, outerRadius, large, x1, y1,
		ix0, iy0, inner, inner, large, ix1, iy1)
}

func point(r, angle float64) (float64, float64) {
	return chartCenter + r*math.Cos(angle), chartCenter + r*math.Sin(angle)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
