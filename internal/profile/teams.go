package profile

import (
	"bytes"
	"encoding/json"
	"strings"
)

// TeamRef aceita as duas formas que a sessão usa para times:
// "FkmdnFU" ou {"_id": "FkmdnFU", ...}. Entradas inválidas viram ID vazio
// e são descartadas por NormalizeTeams.
type TeamRef struct {
	ID string
}

func (t *TeamRef) UnmarshalJSON(b []byte) error {
	t.ID = ""
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return nil
	}
	switch b[0] {
	case '"':
		var s string
		if err := json.Unmarshal(b, &s); err == nil {
			t.ID = s
		}
	case '{':
		var obj struct {
			ID json.RawMessage `json:"_id"`
		}
		if err := json.Unmarshal(b, &obj); err == nil {
			var s string
			if json.Unmarshal(obj.ID, &s) == nil {
				t.ID = s
			}
		}
	}
	return nil
}

func (t TeamRef) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.ID)
}

// NormalizeTeams reduz as referências a uma lista de IDs sem vazios nem repetidos,
// preservando a ordem.
func NormalizeTeams(refs []TeamRef) []string {
	ids := make([]string, 0, len(refs))
	for _, r := range refs {
		ids = append(ids, r.ID)
	}
	return normalizeIDs(ids)
}

// ParseTeamsHeader lê uma lista separada por vírgulas (header X-User-Teams).
func ParseTeamsHeader(v string) []string {
	if strings.TrimSpace(v) == "" {
		return []string{}
	}
	return normalizeIDs(strings.Split(v, ","))
}

func normalizeIDs(ids []string) []string {
	out := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
