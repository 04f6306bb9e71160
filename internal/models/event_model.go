package models

import "time"

const (
	EventDashboardLoaded  = "dashboard_loaded"
	EventDashboardRefresh = "dashboard_refreshed"
)

// DashboardEvent é publicado no broker a cada carga confirmada do painel.
type DashboardEvent struct {
	Type      string    `json:"type"`
	PlayerID  string    `json:"player_id"`
	Month     string    `json:"month"`
	LoadID    string    `json:"load_id"`
	Companies int       `json:"companies"`
	WithKPI   int       `json:"with_kpi"`
	At        time.Time `json:"at"`
}
