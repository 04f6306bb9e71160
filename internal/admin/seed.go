package admin

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Werneck0live/painel-gamificacao/internal/models"
	"github.com/Werneck0live/painel-gamificacao/internal/repository"
	"github.com/Werneck0live/painel-gamificacao/internal/utils"
)

//go:embed seeds/action_log.json
var actionLogJSON []byte

//go:embed seeds/kpis.json
var kpisJSON []byte

type ActionLogWriter interface {
	Insert(ctx context.Context, a *models.ActionLog) error
}

type KpiWriter interface {
	Upsert(ctx context.Context, k *models.CnpjKpiData) error
}

// Idempotente: action logs já existentes são ignorados; KPIs são sobrescritos.
func SeedDashboard(ctx context.Context, logs ActionLogWriter, kpis KpiWriter, log *slog.Logger) error {
	var items []models.ActionLog
	if err := json.Unmarshal(actionLogJSON, &items); err != nil {
		return fmt.Errorf("parse action_log seed: %w", err)
	}
	var ks []models.CnpjKpiData
	if err := json.Unmarshal(kpisJSON, &ks); err != nil {
		return fmt.Errorf("parse kpis seed: %w", err)
	}

	created := 0
	for i := range items {
		a := &items[i]
		if _, ok := utils.ExtractCnpjID(a.Cnpj); !ok {
			// entra mesmo assim: o painel mostra a string crua
			log.Warn("seed_action_log_without_cnpj_id", "id", a.ID, "cnpj", a.Cnpj)
		}

		// timeout curto por item pra não travar
		ictx, cancel := context.WithTimeout(ctx, 3*time.Second)
		err := logs.Insert(ictx, a)
		cancel()
		if err != nil {
			if errors.Is(err, repository.ErrDuplicateActionLog) {
				log.Info("seed_action_log_exists", "id", a.ID)
				continue
			}
			return err
		}
		created++
	}

	for i := range ks {
		ictx, cancel := context.WithTimeout(ctx, 3*time.Second)
		err := kpis.Upsert(ictx, &ks[i])
		cancel()
		if err != nil {
			return fmt.Errorf("upsert kpi %s: %w", ks[i].ID, err)
		}
	}

	log.Info("seed_dashboard_done", "action_logs", len(items), "created", created, "kpis", len(ks))
	return nil
}
