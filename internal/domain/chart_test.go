package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestNewSalesChart_Default(t *testing.T) {
	theme := ChartTheme{TextColor: "#495057", TextColorSecondary: "#6c757d", SurfaceBorder: "#dfe7ef", Primary: "#3b82f6"}
	chart := NewSalesChart(DefaultHourlySales(), theme)

	if err := chart.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if len(chart.Labels) != 10 {
		t.Fatalf("len(Labels) = %d, want 10", len(chart.Labels))
	}
	if chart.Labels[0] != "08:00" || chart.Labels[9] != "17:00" {
		t.Errorf("labels = %v, want 08:00..17:00", chart.Labels)
	}

	ds := chart.Datasets[0]
	if ds.Label != SalesChartLabel {
		t.Errorf("dataset label = %q", ds.Label)
	}
	if !ds.Data[4].Equal(decimal.NewFromInt(420)) {
		t.Errorf("12:00 value = %s, want 420", ds.Data[4])
	}
	if ds.BorderColor != theme.Primary {
		t.Errorf("border color = %q, want %q", ds.BorderColor, theme.Primary)
	}
}

func TestChartDescriptor_ValidateMismatch(t *testing.T) {
	chart := &ChartDescriptor{
		Labels:   []string{"08:00", "09:00"},
		Datasets: []ChartDataset{{Label: "x", Data: []decimal.Decimal{decimal.NewFromInt(1)}}},
	}

	err := chart.Validate()
	if !errors.Is(err, ErrChartLengthMismatch) {
		t.Errorf("Validate() error = %v, want ErrChartLengthMismatch", err)
	}
}

func TestMessage_LifeMillis(t *testing.T) {
	if got := (Message{}).LifeMillis(); got != 3000 {
		t.Errorf("default life = %d, want 3000", got)
	}
}
