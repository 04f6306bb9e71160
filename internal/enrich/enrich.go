// Package enrich junta as linhas do action log com os KPIs de entrega de cada empresa.
package enrich

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/Werneck0live/painel-gamificacao/internal/models"
	"github.com/Werneck0live/painel-gamificacao/internal/utils"
)

type KpiLookup interface {
	GetKpiData(ctx context.Context, id string) (*models.CnpjKpiData, bool)
}

type Enricher struct {
	kpis        KpiLookup
	target      float64
	concurrency int
	log         *slog.Logger
}

func NewEnricher(kpis KpiLookup, target float64, concurrency int, log *slog.Logger) *Enricher {
	if concurrency <= 0 {
		concurrency = 1
	}
	if log == nil {
		log = slog.Default()
	}
	return &Enricher{
		kpis:        kpis,
		target:      target,
		concurrency: concurrency,
		log:         log.With("cmp", "enrich"),
	}
}

// EnrichCompaniesWithKpis devolve um CompanyDisplay por item, na mesma ordem da entrada.
// Lista nil ou vazia resulta em slice vazio. Falhas de extração ou de KPI viram
// ausência de campo; o método nunca falha.
func (e *Enricher) EnrichCompaniesWithKpis(ctx context.Context, list []models.CnpjListItem) []models.CompanyDisplay {
	out := make([]models.CompanyDisplay, len(list))
	if len(list) == 0 {
		return out
	}

	var g errgroup.Group
	g.SetLimit(e.concurrency)

	for i, item := range list {
		out[i] = models.CompanyDisplay{Cnpj: item.Cnpj, ActionCount: item.ActionCount}

		id, ok := utils.ExtractCnpjID(item.Cnpj)
		if !ok {
			e.log.Debug("cnpj_id_not_found", "cnpj", item.Cnpj)
			continue
		}
		out[i].CnpjID = &id

		i := i // cópia por iteração (go 1.21 não tem loopvar por iteração)
		g.Go(func() error {
			data, found := e.kpis.GetKpiData(ctx, id)
			if found && data != nil {
				out[i].DeliveryKPI = utils.NewDeliveryKPI(data.Entrega, e.target)
			}
			return nil
		})
	}
	_ = g.Wait()

	return out
}
