package handlers

import (
	"net/http"
	"strings"

	"github.com/Werneck0live/painel-gamificacao/internal/profile"
	"github.com/Werneck0live/painel-gamificacao/internal/utils"
)

const teamsHeader = "X-User-Teams"

type ProfileHandler struct{}

func NewProfileHandler() *ProfileHandler { return &ProfileHandler{} }

// POST /api/profile
func (h *ProfileHandler) Profile(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var dto ProfileRequestDTO
	if err := utils.DecodeStrict(r.Body, &dto); err != nil {
		utils.BadRequest(w, err.Error())
		return
	}
	if err := validateProfileDTO(dto); err != nil {
		utils.BadRequest(w, err.Error())
		return
	}

	teams := profile.NormalizeTeams(dto.Teams)
	p := profile.DetermineUserProfile(teams)
	resp := ProfileResponse{
		Profile: p,
		Teams:   teams,
		Access:  profile.GetAccessibleTeamIDs(teams, p),
	}
	if own, ok := profile.GetUserOwnTeamID(teams, p); ok {
		resp.OwnTeamID = own
	}
	utils.WriteJSON(w, http.StatusOK, resp)
}

// /api/teams/{teamId}/access
func parseTeamAccessPath(path string) (string, bool) {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) == 4 && parts[0] == "api" && parts[1] == "teams" && parts[2] != "" && parts[3] == "access" {
		return parts[2], true
	}
	return "", false
}

// GET /api/teams/{teamId}/access: guarda da tela de gestão de times.
// Os times do usuário vêm no header X-User-Teams (lista separada por vírgulas).
func (h *ProfileHandler) TeamAccess(w http.ResponseWriter, r *http.Request) {
	teamID, ok := parseTeamAccessPath(r.URL.Path)
	if !ok {
		utils.WriteError(w, http.StatusNotFound, "not found")
		return
	}
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	teams := profile.ParseTeamsHeader(r.Header.Get(teamsHeader))
	p := profile.DetermineUserProfile(teams)
	allowed := profile.CanAccessTeam(profile.GetAccessibleTeamIDs(teams, p), teamID)

	code := http.StatusOK
	if !allowed {
		code = http.StatusForbidden
	}
	utils.WriteJSON(w, code, TeamAccessResponse{TeamID: teamID, Profile: p, Allowed: allowed})
}
