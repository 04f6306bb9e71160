package utils

import "strings"

// ExtractCnpjID extrai o id da empresa de uma string de exibição no formato
// "<nome> l <código> [<id>|<sufixo>]". Retorna ("", false) se a estrutura
// colchete/pipe não estiver presente ou o id vier vazio. Nunca entra em pânico.
func ExtractCnpjID(raw string) (string, bool) {
	open := strings.LastIndexByte(raw, '[')
	if open < 0 {
		return "", false
	}
	rest := raw[open+1:]
	end := strings.IndexByte(rest, ']')
	if end < 0 {
		return "", false
	}
	inner := rest[:end]
	pipe := strings.IndexByte(inner, '|')
	if pipe < 0 {
		return "", false
	}
	id := strings.TrimSpace(inner[:pipe])
	if id == "" {
		return "", false
	}
	return id, true
}
