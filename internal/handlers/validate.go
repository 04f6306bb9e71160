package handlers

import (
	"errors"
	"strings"
	"time"

	"github.com/Werneck0live/painel-gamificacao/internal/dashboard"
)

// parseMonth aceita "YYYY-MM"; vazio = mês corrente.
func parseMonth(s string, now time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC), nil
	}
	m, err := time.Parse(dashboard.MonthLayout, s)
	if err != nil {
		return time.Time{}, errors.New("month must be YYYY-MM")
	}
	return m, nil
}

func validateProfileDTO(d ProfileRequestDTO) error {
	if len(d.Teams) > 500 {
		return errors.New("too many teams")
	}
	return nil
}
