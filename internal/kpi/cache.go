// Package kpi memoiza consultas de KPI por id normalizado de empresa.
package kpi

import (
	"context"
	"log/slog"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/Werneck0live/painel-gamificacao/internal/models"
)

// Fetcher busca o KPI no backend. (nil, nil) significa "empresa sem KPI".
type Fetcher interface {
	GetKpiData(ctx context.Context, id string) (*models.CnpjKpiData, error)
}

type Stats struct {
	Hits    uint64 `json:"hits"`
	Misses  uint64 `json:"misses"`
	Fetches uint64 `json:"fetches"`
	Errors  uint64 `json:"errors"`
	Entries int    `json:"entries"`
}

// Cache guarda o resultado de cada id pela vida da instância (ou até ClearCache).
// Chamadas concorrentes para o mesmo id compartilham uma única busca.
// Erros de busca não são guardados: o id vira "sem KPI" só para aquela chamada.
type Cache struct {
	fetch   Fetcher
	timeout time.Duration
	log     *slog.Logger

	mu      sync.RWMutex
	entries map[string]*models.CnpjKpiData // valor nil = sem KPI
	epoch   uint64

	group singleflight.Group

	hits, misses, fetches, errs atomic.Uint64
}

func NewCache(f Fetcher, timeout time.Duration, log *slog.Logger) *Cache {
	if log == nil {
		log = slog.Default()
	}
	return &Cache{
		fetch:   f,
		timeout: timeout,
		log:     log.With("cmp", "kpi.cache"),
		entries: make(map[string]*models.CnpjKpiData),
	}
}

// GetKpiData retorna o KPI do id e true, ou false quando não há dado
// (inexistente, erro, timeout ou ctx cancelado).
func (c *Cache) GetKpiData(ctx context.Context, id string) (*models.CnpjKpiData, bool) {
	if id == "" {
		return nil, false
	}

	c.mu.RLock()
	data, ok := c.entries[id]
	epoch := c.epoch
	c.mu.RUnlock()
	if ok {
		c.hits.Add(1)
		return data, data != nil
	}
	c.misses.Add(1)

	// a época entra na chave: depois de um ClearCache ninguém pega carona
	// numa busca iniciada antes da limpeza
	key := strconv.FormatUint(epoch, 10) + ":" + id
	ch := c.group.DoChan(key, func() (any, error) {
		return c.load(ctx, id, epoch)
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, false
		}
		data, _ := res.Val.(*models.CnpjKpiData)
		return data, data != nil
	case <-ctx.Done():
		return nil, false
	}
}

func (c *Cache) load(ctx context.Context, id string, epoch uint64) (*models.CnpjKpiData, error) {
	// a busca é compartilhada; não pode morrer junto com o ctx de quem chegou primeiro
	fctx := context.WithoutCancel(ctx)
	if c.timeout > 0 {
		var cancel context.CancelFunc
		fctx, cancel = context.WithTimeout(fctx, c.timeout)
		defer cancel()
	}

	c.fetches.Add(1)
	data, err := c.fetch.GetKpiData(fctx, id)
	if err != nil {
		c.errs.Add(1)
		c.log.Warn("kpi_fetch_error", "cnpj_id", id, "err", err)
		return nil, err
	}
	if data != nil && data.ID != id {
		// nunca servir o dado de um id para outro
		c.log.Warn("kpi_fetch_id_mismatch", "cnpj_id", id, "got", data.ID)
		data = nil
	}

	c.mu.Lock()
	if c.epoch == epoch {
		c.entries[id] = data
	}
	c.mu.Unlock()
	return data, nil
}

// ClearCache invalida todas as entradas (refresh manual do usuário).
func (c *Cache) ClearCache() {
	c.mu.Lock()
	n := len(c.entries)
	c.entries = make(map[string]*models.CnpjKpiData)
	c.epoch++
	c.mu.Unlock()
	c.log.Info("kpi_cache_cleared", "entries", n)
}

func (c *Cache) Stats() Stats {
	c.mu.RLock()
	n := len(c.entries)
	c.mu.RUnlock()
	return Stats{
		Hits:    c.hits.Load(),
		Misses:  c.misses.Load(),
		Fetches: c.fetches.Load(),
		Errors:  c.errs.Load(),
		Entries: n,
	}
}
