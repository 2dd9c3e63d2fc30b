package regexboard

import (
	"context"

	"github.com/kailas-cloud/regexboard/internal/domain/match"
	"github.com/kailas-cloud/regexboard/internal/domain/mode"
	dompat "github.com/kailas-cloud/regexboard/internal/domain/pattern"
	dashboarduc "github.com/kailas-cloud/regexboard/internal/usecase/dashboard"
)

// --- dashboardUseCase mock ---

type mockDashboard struct {
	stateFn     func(ctx context.Context) (dashboarduc.State, error)
	createFn    func(ctx context.Context, regex string) (dashboarduc.State, error)
	updateFn    func(ctx context.Context, id, regex string) (dashboarduc.State, error)
	deleteFn    func(ctx context.Context, id string) (dashboarduc.State, error)
	recomputeFn func(ctx context.Context) (dashboarduc.State, error)
	regenFn     func(ctx context.Context) (dashboarduc.State, error)
	approveFn   func(ctx context.Context, key match.Key) ([]match.Match, error)
	viewFn      func(ctx context.Context, m mode.Mode, selectedID string) (dashboarduc.View, error)
}

func (m *mockDashboard) State(ctx context.Context) (dashboarduc.State, error) {
	return m.stateFn(ctx)
}

func (m *mockDashboard) CreatePattern(ctx context.Context, regex string) (dashboarduc.State, error) {
	return m.createFn(ctx, regex)
}

func (m *mockDashboard) UpdatePattern(ctx context.Context, id, regex string) (dashboarduc.State, error) {
	return m.updateFn(ctx, id, regex)
}

func (m *mockDashboard) DeletePattern(ctx context.Context, id string) (dashboarduc.State, error) {
	return m.deleteFn(ctx, id)
}

func (m *mockDashboard) Recompute(ctx context.Context) (dashboarduc.State, error) {
	return m.recomputeFn(ctx)
}

func (m *mockDashboard) RegenerateDocument(ctx context.Context) (dashboarduc.State, error) {
	return m.regenFn(ctx)
}

func (m *mockDashboard) Approve(ctx context.Context, key match.Key) ([]match.Match, error) {
	return m.approveFn(ctx, key)
}

func (m *mockDashboard) View(ctx context.Context, md mode.Mode, selectedID string) (dashboarduc.View, error) {
	return m.viewFn(ctx, md, selectedID)
}

// --- patternUseCase mock ---

type mockPatterns struct {
	listFn func(ctx context.Context) ([]dompat.Pattern, error)
	getFn  func(ctx context.Context, id string) (dompat.Pattern, error)
}

func (m *mockPatterns) List(ctx context.Context) ([]dompat.Pattern, error) {
	return m.listFn(ctx)
}

func (m *mockPatterns) Get(ctx context.Context, id string) (dompat.Pattern, error) {
	return m.getFn(ctx, id)
}
