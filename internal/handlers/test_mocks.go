package handlers

import (
	"context"
	"errors"
	"time"

	"github.com/Werneck0live/painel-gamificacao/internal/dashboard"
	"github.com/Werneck0live/painel-gamificacao/internal/models"
)

type dashMock struct {
	LoadFn    func(ctx context.Context, playerID string, month time.Time) (*dashboard.Result, error)
	RefreshFn func(ctx context.Context, playerID string, month time.Time) (*dashboard.Result, error)
}

func (m *dashMock) Load(ctx context.Context, playerID string, month time.Time) (*dashboard.Result, error) {
	if m.LoadFn == nil {
		return nil, errors.New("LoadFn not set")
	}
	return m.LoadFn(ctx, playerID, month)
}

func (m *dashMock) Refresh(ctx context.Context, playerID string, month time.Time) (*dashboard.Result, error) {
	if m.RefreshFn == nil {
		return nil, errors.New("RefreshFn not set")
	}
	return m.RefreshFn(ctx, playerID, month)
}

type kpiMock struct {
	GetKpiDataFn func(ctx context.Context, id string) (*models.CnpjKpiData, bool)
}

func (m *kpiMock) GetKpiData(ctx context.Context, id string) (*models.CnpjKpiData, bool) {
	if m.GetKpiDataFn == nil {
		return nil, false
	}
	return m.GetKpiDataFn(ctx, id)
}
