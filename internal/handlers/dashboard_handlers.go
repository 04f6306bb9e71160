package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/Werneck0live/painel-gamificacao/internal/dashboard"
	"github.com/Werneck0live/painel-gamificacao/internal/models"
	"github.com/Werneck0live/painel-gamificacao/internal/utils"
)

type Dashboard interface {
	Load(ctx context.Context, playerID string, month time.Time) (*dashboard.Result, error)
	Refresh(ctx context.Context, playerID string, month time.Time) (*dashboard.Result, error)
}

type KpiLookup interface {
	GetKpiData(ctx context.Context, id string) (*models.CnpjKpiData, bool)
}

type DashboardHandler struct {
	Dash   Dashboard
	Kpis   KpiLookup
	Target float64 // meta de entrega usada em /api/kpis/{id}
	Now    func() time.Time
}

func NewDashboardHandler(dash Dashboard, kpis KpiLookup, target float64) *DashboardHandler {
	return &DashboardHandler{Dash: dash, Kpis: kpis, Target: target, Now: time.Now}
}

func (h *DashboardHandler) now() time.Time {
	if h.Now == nil {
		return time.Now()
	}
	return h.Now()
}

// /api/players/{id}/companies[/refresh]
func parsePlayerPath(path string) (playerID string, refresh bool, ok bool) {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) < 4 || parts[0] != "api" || parts[1] != "players" || parts[2] == "" || parts[3] != "companies" {
		return "", false, false
	}
	switch len(parts) {
	case 4:
		return parts[2], false, true
	case 5:
		if parts[4] == "refresh" {
			return parts[2], true, true
		}
	}
	return "", false, false
}

// /api/kpis/{cnpjId}
func parseKpiPath(path string) (string, bool) {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) == 3 && parts[0] == "api" && parts[1] == "kpis" && parts[2] != "" {
		return parts[2], true
	}
	return "", false
}

func (h *DashboardHandler) Health(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *DashboardHandler) PlayerCompanies(w http.ResponseWriter, r *http.Request) {
	playerID, refresh, ok := parsePlayerPath(r.URL.Path)
	if !ok {
		utils.WriteError(w, http.StatusNotFound, "not found")
		return
	}

	switch {
	case !refresh && r.Method == http.MethodGet:
	case refresh && r.Method == http.MethodPost:
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	month, err := parseMonth(r.URL.Query().Get("month"), h.now())
	if err != nil {
		utils.BadRequest(w, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	var res *dashboard.Result
	if refresh {
		res, err = h.Dash.Refresh(ctx, playerID, month)
	} else {
		res, err = h.Dash.Load(ctx, playerID, month)
	}
	if err != nil {
		switch {
		case errors.Is(err, dashboard.ErrSuperseded):
			utils.WriteError(w, http.StatusConflict, "superseded by a newer load")
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			utils.WriteError(w, http.StatusServiceUnavailable, "load cancelled")
		default:
			utils.WriteError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	resp := CompaniesResponse{
		PlayerID:  res.PlayerID,
		Month:     res.Month,
		LoadID:    res.LoadID,
		Companies: res.Companies,
	}
	if resp.Companies == nil {
		resp.Companies = []models.CompanyDisplay{}
	}
	if res.ListErr != nil {
		slog.Warn("player_companies_list_error", "player_id", playerID, "err", res.ListErr)
		resp.Error = "action log unavailable"
	}
	utils.WriteJSON(w, http.StatusOK, resp)
}

func (h *DashboardHandler) KpiByID(w http.ResponseWriter, r *http.Request) {
	id, ok := parseKpiPath(r.URL.Path)
	if !ok {
		utils.WriteError(w, http.StatusNotFound, "not found")
		return
	}
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	data, found := h.Kpis.GetKpiData(ctx, id)
	if !found {
		utils.WriteError(w, http.StatusNotFound, "kpi not found")
		return
	}
	utils.WriteJSON(w, http.StatusOK, KpiResponse{
		CnpjID:      data.ID,
		DeliveryKPI: utils.NewDeliveryKPI(data.Entrega, h.Target),
	})
}
