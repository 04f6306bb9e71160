package handlers

import (
	"github.com/Werneck0live/painel-gamificacao/internal/models"
	"github.com/Werneck0live/painel-gamificacao/internal/profile"
)

type CompaniesResponse struct {
	PlayerID  string                  `json:"player_id"`
	Month     string                  `json:"month"`
	LoadID    string                  `json:"load_id"`
	Companies []models.CompanyDisplay `json:"companies"`
	// Error preenchido quando o action log falhou (a UI mostra um aviso; a lista vem vazia)
	Error string `json:"error,omitempty"`
}

type KpiResponse struct {
	CnpjID      string          `json:"cnpjId"`
	DeliveryKPI *models.KPIData `json:"deliveryKpi"`
}

// ProfileRequestDTO: teams aceita ["id", {"_id": "id"}, ...]
type ProfileRequestDTO struct {
	Teams []profile.TeamRef `json:"teams"`
}

type ProfileResponse struct {
	Profile   profile.UserProfile `json:"profile"`
	Teams     []string            `json:"teams"`
	Access    profile.Access      `json:"access"`
	OwnTeamID string              `json:"own_team_id,omitempty"`
}

type TeamAccessResponse struct {
	TeamID  string              `json:"team_id"`
	Profile profile.UserProfile `json:"profile"`
	Allowed bool                `json:"allowed"`
}
