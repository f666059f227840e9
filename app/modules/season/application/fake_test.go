package seasonservice

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/jollyfox-guild/vale-bot/app/shared/observability"
	"github.com/jollyfox-guild/vale-bot/app/shared/observability/opmetrics"
	seasontypes "github.com/jollyfox-guild/vale-bot/app/shared/types/season"
	sharedtypes "github.com/jollyfox-guild/vale-bot/app/shared/types/shared"
	"github.com/jollyfox-guild/vale-bot/config"
)

// fakeSeasonRepo keeps the document in memory, self-healing to a default
// state like the real repository.
type fakeSeasonRepo struct {
	state   *seasontypes.SeasonState
	loadErr error
	saveErr error
	saves   int
}

func (f *fakeSeasonRepo) Load(_ context.Context, _ sharedtypes.GuildID) (*seasontypes.SeasonState, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	if f.state == nil {
		f.state = seasontypes.NewSeasonState()
	}
	return f.state, nil
}

func (f *fakeSeasonRepo) Save(_ context.Context, _ sharedtypes.GuildID, state *seasontypes.SeasonState) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.state = state
	f.saves++
	return nil
}

func testBalance() config.BalanceConfig {
	cfg := &config.Config{}
	cfg.ApplyDefaults()
	return cfg.Balance
}

func newTestService(repo *fakeSeasonRepo, maxDays int) *SeasonService {
	obs := observability.NoOpProvider()
	metrics := opmetrics.NewPrometheusMetrics(prometheus.NewRegistry(), "season_test")
	svc := NewSeasonService(repo, obs.Logger, metrics, noop.NewTracerProvider().Tracer("test"), testBalance(), maxDays)
	svc.randInt = func(n int) int { return 0 }
	return svc
}

// activeState returns a live fight with full pools.
func activeState() *seasontypes.SeasonState {
	state := seasontypes.NewSeasonState()
	state.Active = true
	state.SnapshotAliveFactions()
	return state
}

func castVotes(state *seasontypes.SeasonState, fid sharedtypes.FactionID, action sharedtypes.VoteAction, n int) {
	for i := 0; i < n; i++ {
		id := sharedtypes.UserID(string(fid) + "-" + string(action) + "-" + string(rune('a'+i)))
		state.Votes[fid][action][id] = struct{}{}
	}
}
