// Package profile resolve o perfil do usuário a partir dos times da sessão.
package profile

import "slices"

type UserProfile string

const (
	Jogador    UserProfile = "JOGADOR"
	Supervisor UserProfile = "SUPERVISOR"
	Gestor     UserProfile = "GESTOR"
	Diretor    UserProfile = "DIRETOR"
)

// IDs fixos dos times de gestão.
const (
	TeamDirecao    = "FkmdhZ9"
	TeamGestao     = "FkmdnFU"
	TeamSupervisao = "Fkmdmko"
)

// DetermineUserProfile: primeiro match vence, DIRETOR > GESTOR > SUPERVISOR > JOGADOR.
// É função pura dos times recebidos; nada é guardado entre chamadas.
func DetermineUserProfile(teams []string) UserProfile {
	ids := normalizeIDs(teams)
	switch {
	case slices.Contains(ids, TeamDirecao):
		return Diretor
	case slices.Contains(ids, TeamGestao):
		return Gestor
	case slices.Contains(ids, TeamSupervisao):
		return Supervisor
	default:
		return Jogador
	}
}

type AccessKind string

const (
	AccessNone   AccessKind = "none"
	AccessAll    AccessKind = "all"
	AccessSubset AccessKind = "subset"
)

// Access separa "nenhum time" de "todos os times", que antes eram ambos uma lista vazia.
type Access struct {
	Kind AccessKind `json:"kind"`
	IDs  []string   `json:"ids,omitempty"`
}

func GetAccessibleTeamIDs(teams []string, p UserProfile) Access {
	ids := normalizeIDs(teams)
	switch p {
	case Diretor:
		return Access{Kind: AccessAll}
	case Gestor:
		return Access{Kind: AccessSubset, IDs: without(ids, TeamGestao)}
	case Supervisor:
		return Access{Kind: AccessSubset, IDs: without(ids, TeamSupervisao)}
	default:
		return Access{Kind: AccessNone}
	}
}

// GetUserOwnTeamID devolve o time de gestão do próprio usuário (SUPERVISOR/GESTOR).
func GetUserOwnTeamID(teams []string, p UserProfile) (string, bool) {
	var own string
	switch p {
	case Supervisor:
		own = TeamSupervisao
	case Gestor:
		own = TeamGestao
	default:
		return "", false
	}
	if slices.Contains(normalizeIDs(teams), own) {
		return own, true
	}
	return "", false
}

func CanAccessTeam(a Access, teamID string) bool {
	switch a.Kind {
	case AccessAll:
		return true
	case AccessSubset:
		return teamID != "" && slices.Contains(a.IDs, teamID)
	default:
		return false
	}
}

func without(ids []string, drop string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id != drop {
			out = append(out, id)
		}
	}
	return out
}
