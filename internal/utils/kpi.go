package utils

import (
	"math"

	"github.com/Werneck0live/painel-gamificacao/internal/models"
)

const (
	DeliveryKPIID    = "entrega"
	DeliveryKPILabel = "Entrega"
	DeliveryKPIUnit  = "%"
)

// ComputePercentage retorna round(current/target*100), arredondando meio para cima,
// limitado a [0, math.MaxInt32]. Meta <= 0 resulta em 0.
func ComputePercentage(current, target float64) int {
	if target <= 0 || math.IsNaN(current) || math.IsInf(current, 0) {
		return 0
	}
	v := math.Floor(current/target*100 + 0.5)
	switch {
	case v <= 0:
		return 0
	case v >= math.MaxInt32:
		return math.MaxInt32
	}
	return int(v)
}

// ColorBand: >=80 verde; 50..79 amarelo; resto vermelho.
func ColorBand(percentage int) models.KPIColor {
	switch {
	case percentage >= 80:
		return models.KPIGreen
	case percentage >= 50:
		return models.KPIYellow
	default:
		return models.KPIRed
	}
}

func NewDeliveryKPI(current, target float64) *models.KPIData {
	p := ComputePercentage(current, target)
	return &models.KPIData{
		ID:         DeliveryKPIID,
		Label:      DeliveryKPILabel,
		Current:    current,
		Target:     target,
		Unit:       DeliveryKPIUnit,
		Percentage: p,
		Color:      ColorBand(p),
	}
}
