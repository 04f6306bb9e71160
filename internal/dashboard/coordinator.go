// Package dashboard coordena as cargas do painel por jogador. A última carga
// iniciada vence: uma carga nova cancela a anterior e resultados atrasados
// de cargas substituídas são descartados.
package dashboard

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Werneck0live/painel-gamificacao/internal/models"
)

var ErrSuperseded = errors.New("dashboard load superseded by a newer one")

const MonthLayout = "2006-01"

type ListSource interface {
	ListCnpjs(ctx context.Context, playerID string, month time.Time) ([]models.CnpjListItem, error)
}

type Enricher interface {
	EnrichCompaniesWithKpis(ctx context.Context, list []models.CnpjListItem) []models.CompanyDisplay
}

type CacheClearer interface {
	ClearCache()
}

type EventPublisher interface {
	PublishEvent(ctx context.Context, ev models.DashboardEvent) error
}

type Result struct {
	PlayerID  string                  `json:"player_id"`
	Month     string                  `json:"month"`
	LoadID    string                  `json:"load_id"`
	Companies []models.CompanyDisplay `json:"companies"`
	LoadedAt  time.Time               `json:"loaded_at"`

	// ListErr: o action log falhou; Companies vem vazio e a UI mostra o aviso.
	ListErr error `json:"-"`
}

type loadState struct {
	gen    uint64
	cancel context.CancelFunc
}

type Coordinator struct {
	src   ListSource
	enr   Enricher
	cache CacheClearer
	pub   EventPublisher // opcional
	log   *slog.Logger

	mu      sync.Mutex
	gen     uint64 // global: gerações não se repetem mesmo após apagar a entrada do jogador
	loads   map[string]*loadState
	current map[string]*Result

	now func() time.Time
}

func NewCoordinator(src ListSource, enr Enricher, cache CacheClearer, pub EventPublisher, log *slog.Logger) *Coordinator {
	if log == nil {
		log = slog.Default()
	}
	return &Coordinator{
		src:     src,
		enr:     enr,
		cache:   cache,
		pub:     pub,
		log:     log.With("cmp", "dashboard"),
		loads:   make(map[string]*loadState),
		current: make(map[string]*Result),
		now:     time.Now,
	}
}

// Load carrega o painel do jogador no mês. Retorna ErrSuperseded se outra carga
// do mesmo jogador começou depois desta.
func (c *Coordinator) Load(ctx context.Context, playerID string, month time.Time) (*Result, error) {
	return c.load(ctx, playerID, month, models.EventDashboardLoaded)
}

// Refresh é o refresh manual: limpa o cache de KPI antes de carregar.
func (c *Coordinator) Refresh(ctx context.Context, playerID string, month time.Time) (*Result, error) {
	if c.cache != nil {
		c.cache.ClearCache()
	}
	return c.load(ctx, playerID, month, models.EventDashboardRefresh)
}

// committed devolve a última carga confirmada do jogador.
func (c *Coordinator) committed(playerID string) (*Result, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	r, ok := c.current[playerID]
	return r, ok
}

func (c *Coordinator) begin(ctx context.Context, playerID string) (context.Context, uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	st, ok := c.loads[playerID]
	if !ok {
		st = &loadState{}
		c.loads[playerID] = st
	}
	if st.cancel != nil {
		st.cancel()
	}
	lctx, cancel := context.WithCancel(ctx)
	c.gen++
	st.gen = c.gen
	st.cancel = cancel
	return lctx, st.gen
}

func (c *Coordinator) isLatest(playerID string, gen uint64) bool {
	st, ok := c.loads[playerID]
	return ok && st.gen == gen
}

func (c *Coordinator) finish(playerID string, gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if st, ok := c.loads[playerID]; ok && st.gen == gen {
		st.cancel()
		delete(c.loads, playerID)
	}
}

func (c *Coordinator) load(ctx context.Context, playerID string, month time.Time, evType string) (*Result, error) {
	lctx, gen := c.begin(ctx, playerID)
	defer c.finish(playerID, gen)

	res := &Result{
		PlayerID: playerID,
		Month:    month.Format(MonthLayout),
		LoadID:   uuid.NewString(),
	}
	log := c.log.With("player_id", playerID, "month", res.Month, "load_id", res.LoadID, "gen", gen)

	items, err := c.src.ListCnpjs(lctx, playerID, month)
	if err != nil {
		items = nil
		res.ListErr = err
	}
	res.Companies = c.enr.EnrichCompaniesWithKpis(lctx, items)
	res.LoadedAt = c.now()

	c.mu.Lock()
	if !c.isLatest(playerID, gen) {
		c.mu.Unlock()
		log.Info("dashboard_load_superseded")
		return nil, ErrSuperseded
	}
	if err := ctx.Err(); err != nil {
		// quem pediu desistiu; não sobrescreve o estado atual com uma carga pela metade
		c.mu.Unlock()
		log.Info("dashboard_load_cancelled", "err", err)
		return nil, err
	}
	c.current[playerID] = res
	c.mu.Unlock()

	withKPI := 0
	for _, cd := range res.Companies {
		if cd.DeliveryKPI != nil {
			withKPI++
		}
	}
	if res.ListErr != nil {
		log.Warn("action_log_list_error", "err", res.ListErr)
	}
	log.Info("dashboard_loaded", "companies", len(res.Companies), "with_kpi", withKPI)

	c.publish(models.DashboardEvent{
		Type:      evType,
		PlayerID:  playerID,
		Month:     res.Month,
		LoadID:    res.LoadID,
		Companies: len(res.Companies),
		WithKPI:   withKPI,
		At:        res.LoadedAt,
	}, log)

	return res, nil
}

func (c *Coordinator) publish(ev models.DashboardEvent, log *slog.Logger) {
	if c.pub == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := c.pub.PublishEvent(ctx, ev); err != nil {
		log.Warn("dashboard_event_publish_error", "err", err)
	}
}
