package utils

/*

go test -run 'TestComputePercentage|TestColorBand|TestNewDeliveryKPI' -v ./internal/utils -count=1

*/

import (
	"math"
	"testing"

	"github.com/Werneck0live/painel-gamificacao/internal/models"
)

func TestComputePercentage(t *testing.T) {
	cases := []struct {
		current, target float64
		want            int
	}{
		{90, 100, 90}, {0, 100, 0}, {50, 0, 0}, {50, -10, 0},
		{1, 3, 33}, {2, 3, 67},
		{150, 100, 150}, {45, 60, 75}, {math.NaN(), 100, 0}, {math.Inf(1), 100, 0},
		{1e30, 100, math.MaxInt32}, {1, 1e-300, math.MaxInt32}, {-10, 100, 0}, {-1e30, 100, 0},
	}
	for _, tc := range cases {
		if got := ComputePercentage(tc.current, tc.target); got != tc.want {
			t.Fatalf("current=%v target=%v want=%d got=%d", tc.current, tc.target, tc.want, got)
		}
	}
}

func TestColorBand(t *testing.T) {
	cases := []struct {
		p    int
		want models.KPIColor
	}{
		{0, models.KPIRed}, {49, models.KPIRed}, {50, models.KPIYellow},
		{79, models.KPIYellow}, {80, models.KPIGreen}, {100, models.KPIGreen},
		{250, models.KPIGreen}, {-1, models.KPIRed},
	}
	for _, tc := range cases {
		if got := ColorBand(tc.p); got != tc.want {
			t.Fatalf("p=%d want=%s got=%s", tc.p, tc.want, got)
		}
	}
}

func TestNewDeliveryKPI(t *testing.T) {
	if k := NewDeliveryKPI(1e30, 100); k.Percentage != math.MaxInt32 || k.Color != models.KPIGreen {
		t.Fatalf("huge current: %#v", k)
	}
	k := NewDeliveryKPI(90, 100)
	if k.Current != 90 || k.Target != 100 || k.Percentage != 90 || k.Color != models.KPIGreen {
		t.Fatalf("unexpected kpi: %#v", k)
	}
	if k.ID != DeliveryKPIID || k.Unit != "%" {
		t.Fatalf("unexpected metadata: %#v", k)
	}
}
