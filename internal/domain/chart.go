package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// SalesChartLabel is the dataset label of the hourly sales chart
const SalesChartLabel = "Ventas por Hora (USD)"

// Hour buckets shown on the sales chart, inclusive
const (
	SalesFirstHour = 8
	SalesLastHour  = 17
)

// HourLabel formats an hour bucket as shown on the chart axis
func HourLabel(hour int) string {
	return fmt.Sprintf("%02d:00", hour)
}

// ChartTheme holds the colors the chart options are styled with
type ChartTheme struct {
	TextColor          string
	TextColorSecondary string
	SurfaceBorder      string
	Primary            string
}

// ChartDataset is one series of a chart
type ChartDataset struct {
	Label           string            `json:"label"`
	Data            []decimal.Decimal `json:"data"`
	Fill            bool              `json:"fill"`
	BorderColor     string            `json:"borderColor"`
	Tension         float64           `json:"tension"`
	BackgroundColor string            `json:"backgroundColor"`
}

// ChartDescriptor pairs time bucket labels with values plus an opaque options bag
type ChartDescriptor struct {
	Labels   []string               `json:"labels"`
	Datasets []ChartDataset         `json:"datasets"`
	Options  map[string]interface{} `json:"options"`
}

// Validate ensures every dataset has exactly one value per label
func (c *ChartDescriptor) Validate() error {
	for _, ds := range c.Datasets {
		if len(ds.Data) != len(c.Labels) {
			return fmt.Errorf("%w: dataset %q has %d values for %d labels",
				ErrChartLengthMismatch, ds.Label, len(ds.Data), len(c.Labels))
		}
	}
	return nil
}

// DefaultHourlySales returns the fixed hourly sales series for the chart's hour buckets
func DefaultHourlySales() []HourlySales {
	totals := []int64{120, 190, 300, 250, 420, 280, 350, 410, 380, 150}
	sales := make([]HourlySales, len(totals))
	for i, total := range totals {
		sales[i] = HourlySales{
			Label: HourLabel(SalesFirstHour + i),
			Total: decimal.NewFromInt(total),
		}
	}
	return sales
}

// NewSalesChart builds the hourly sales line chart for the given series and theme
func NewSalesChart(sales []HourlySales, theme ChartTheme) *ChartDescriptor {
	labels := make([]string, len(sales))
	data := make([]decimal.Decimal, len(sales))
	for i, s := range sales {
		labels[i] = s.Label
		data[i] = s.Total
	}

	grid := map[string]interface{}{
		"color":      theme.SurfaceBorder,
		"drawBorder": false,
	}

	return &ChartDescriptor{
		Labels: labels,
		Datasets: []ChartDataset{
			{
				Label:           SalesChartLabel,
				Data:            data,
				Fill:            true,
				BorderColor:     theme.Primary,
				Tension:         0.4,
				BackgroundColor: "rgba(59, 130, 246, 0.1)",
			},
		},
		Options: map[string]interface{}{
			"maintainAspectRatio": false,
			"aspectRatio":         0.8,
			"plugins": map[string]interface{}{
				"legend": map[string]interface{}{
					"labels": map[string]interface{}{"color": theme.TextColor},
				},
			},
			"scales": map[string]interface{}{
				"x": map[string]interface{}{
					"ticks": map[string]interface{}{
						"color": theme.TextColorSecondary,
						"font":  map[string]interface{}{"weight": 500},
					},
					"grid": grid,
				},
				"y": map[string]interface{}{
					"ticks": map[string]interface{}{"color": theme.TextColorSecondary},
					"grid":  grid,
				},
			},
		},
	}
}
