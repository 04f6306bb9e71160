package kpi

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/Werneck0live/painel-gamificacao/internal/models"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fetcherFunc func(ctx context.Context, id string) (*models.CnpjKpiData, error)

func (f fetcherFunc) GetKpiData(ctx context.Context, id string) (*models.CnpjKpiData, error) {
	return f(ctx, id)
}

func staticFetcher(calls *atomic.Int32, data map[string]float64) fetcherFunc {
	return func(_ context.Context, id string) (*models.CnpjKpiData, error) {
		calls.Add(1)
		v, ok := data[id]
		if !ok {
			return nil, nil
		}
		return &models.CnpjKpiData{ID: id, Entrega: v}, nil
	}
}

func TestCache_HitAfterMiss(t *testing.T) {
	var calls atomic.Int32
	c := NewCache(staticFetcher(&calls, map[string]float64{"500": 90}), 0, slog.Default())

	d, ok := c.GetKpiData(context.Background(), "500")
	require.True(t, ok)
	require.Equal(t, 90.0, d.Entrega)

	d, ok = c.GetKpiData(context.Background(), "500")
	require.True(t, ok)
	require.Equal(t, "500", d.ID)
	require.Equal(t, int32(1), calls.Load())

	st := c.Stats()
	require.Equal(t, uint64(1), st.Hits)
	require.Equal(t, uint64(1), st.Misses)
	require.Equal(t, 1, st.Entries)
}

func TestCache_NoDataIsCached(t *testing.T) {
	var calls atomic.Int32
	c := NewCache(staticFetcher(&calls, nil), 0, nil)

	for i := 0; i < 3; i++ {
		_, ok := c.GetKpiData(context.Background(), "404")
		require.False(t, ok)
	}
	require.Equal(t, int32(1), calls.Load())
}

func TestCache_EmptyIDSkipsFetch(t *testing.T) {
	var calls atomic.Int32
	c := NewCache(staticFetcher(&calls, nil), 0, nil)
	_, ok := c.GetKpiData(context.Background(), "")
	require.False(t, ok)
	require.Zero(t, calls.Load())
}

func TestCache_ErrorIsNotCached(t *testing.T) {
	var calls atomic.Int32
	fail := true
	c := NewCache(fetcherFunc(func(_ context.Context, id string) (*models.CnpjKpiData, error) {
		calls.Add(1)
		if fail {
			return nil, errors.New("backend down")
		}
		return &models.CnpjKpiData{ID: id, Entrega: 10}, nil
	}), 0, nil)

	_, ok := c.GetKpiData(context.Background(), "1")
	require.False(t, ok)

	fail = false
	d, ok := c.GetKpiData(context.Background(), "1")
	require.True(t, ok)
	require.Equal(t, 10.0, d.Entrega)
	require.Equal(t, int32(2), calls.Load())
	require.Equal(t, uint64(1), c.Stats().Errors)
}

func TestCache_ConcurrentCallsCoalesce(t *testing.T) {
	var calls atomic.Int32
	release := make(chan struct{})
	c := NewCache(fetcherFunc(func(_ context.Context, id string) (*models.CnpjKpiData, error) {
		calls.Add(1)
		<-release
		return &models.CnpjKpiData{ID: id, Entrega: 42}, nil
	}), 0, nil)

	const n = 20
	var started, wg sync.WaitGroup
	started.Add(n)
	wg.Add(n)
	results := make([]float64, n)
	for i := 0; i < n; i++ {
		go func(i int) {
			defer wg.Done()
			started.Done()
			d, ok := c.GetKpiData(context.Background(), "7")
			if ok {
				results[i] = d.Entrega
			}
		}(i)
	}
	started.Wait()
	// dá tempo de todos entrarem no singleflight antes de liberar a busca
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	require.Equal(t, int32(1), calls.Load())
	for i, v := range results {
		require.Equal(t, 42.0, v, "goroutine %d", i)
	}
}

func TestCache_KeysNeverCross(t *testing.T) {
	var calls atomic.Int32
	data := map[string]float64{"a": 1, "b": 2, "c": 3}
	c := NewCache(staticFetcher(&calls, data), 0, nil)

	var wg sync.WaitGroup
	for i := 0; i < 30; i++ {
		for id, want := range data {
			wg.Add(1)
			go func(id string, want float64) {
				defer wg.Done()
				d, ok := c.GetKpiData(context.Background(), id)
				if !ok || d.ID != id || d.Entrega != want {
					t.Errorf("id=%s got=%#v ok=%v", id, d, ok)
				}
			}(id, want)
		}
	}
	wg.Wait()
}

func TestCache_MismatchedIDIsDiscarded(t *testing.T) {
	c := NewCache(fetcherFunc(func(_ context.Context, _ string) (*models.CnpjKpiData, error) {
		return &models.CnpjKpiData{ID: "other", Entrega: 99}, nil
	}), 0, nil)
	_, ok := c.GetKpiData(context.Background(), "mine")
	require.False(t, ok)
}

func TestCache_ClearCacheRefetches(t *testing.T) {
	var calls atomic.Int32
	c := NewCache(staticFetcher(&calls, map[string]float64{"500": 90}), 0, nil)

	_, _ = c.GetKpiData(context.Background(), "500")
	c.ClearCache()
	require.Equal(t, 0, c.Stats().Entries)

	_, ok := c.GetKpiData(context.Background(), "500")
	require.True(t, ok)
	require.Equal(t, int32(2), calls.Load())
}

func TestCache_InflightBeforeClearDoesNotRepopulate(t *testing.T) {
	release := make(chan struct{})
	var calls atomic.Int32
	c := NewCache(fetcherFunc(func(_ context.Context, id string) (*models.CnpjKpiData, error) {
		if calls.Add(1) == 1 {
			<-release
			return &models.CnpjKpiData{ID: id, Entrega: 1}, nil
		}
		return &models.CnpjKpiData{ID: id, Entrega: 2}, nil
	}), 0, nil)

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = c.GetKpiData(context.Background(), "x")
	}()
	require.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, 5*time.Millisecond)

	c.ClearCache()
	close(release)
	<-done

	require.Equal(t, 0, c.Stats().Entries)
	d, ok := c.GetKpiData(context.Background(), "x")
	require.True(t, ok)
	require.Equal(t, 2.0, d.Entrega)
}

func TestCache_CallerCancelReturnsNoData(t *testing.T) {
	release := make(chan struct{})
	c := NewCache(fetcherFunc(func(_ context.Context, id string) (*models.CnpjKpiData, error) {
		<-release
		return &models.CnpjKpiData{ID: id, Entrega: 5}, nil
	}), 0, nil)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()
	_, ok := c.GetKpiData(ctx, "slow")
	require.False(t, ok)

	// a busca compartilhada segue e alimenta o cache
	close(release)
	require.Eventually(t, func() bool { return c.Stats().Entries == 1 }, time.Second, 5*time.Millisecond)
	d, ok := c.GetKpiData(context.Background(), "slow")
	require.True(t, ok)
	require.Equal(t, 5.0, d.Entrega)
}

func TestCache_TimeoutIsNoData(t *testing.T) {
	c := NewCache(fetcherFunc(func(ctx context.Context, _ string) (*models.CnpjKpiData, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	}), 20*time.Millisecond, nil)

	_, ok := c.GetKpiData(context.Background(), "t")
	require.False(t, ok)
	require.Equal(t, uint64(1), c.Stats().Errors)
}
