package broker

import (
	"testing"
	"time"

	"github.com/Werneck0live/painel-gamificacao/internal/models"
)

func TestEventHeaders(t *testing.T) {
	at := time.Date(2026, time.October, 16, 10, 0, 0, 0, time.FixedZone("BRT", -3*3600))
	h := EventHeaders(models.DashboardEvent{
		Type: models.EventDashboardLoaded, PlayerID: "p1", Month: "2026-10", At: at,
	})
	if h["type"] != "dashboard_loaded" || h["player_id"] != "p1" || h["month"] != "2026-10" {
		t.Fatalf("unexpected headers: %#v", h)
	}
	if h["timestamp"] != "2026-10-16T13:00:00Z" {
		t.Fatalf("timestamp=%v", h["timestamp"])
	}
	if err := h.Validate(); err != nil {
		t.Fatalf("invalid amqp table: %v", err)
	}
}
