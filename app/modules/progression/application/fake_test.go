package progressionservice

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/jollyfox-guild/vale-bot/app/shared/observability"
	"github.com/jollyfox-guild/vale-bot/app/shared/observability/opmetrics"
	progressiontypes "github.com/jollyfox-guild/vale-bot/app/shared/types/progression"
	sharedtypes "github.com/jollyfox-guild/vale-bot/app/shared/types/shared"
)

// fakeProgressionRepo keeps players and the scoreboard in memory, creating
// fresh records on first access like the real repository.
type fakeProgressionRepo struct {
	players map[sharedtypes.UserID]*progressiontypes.Player
	board   *progressiontypes.Board

	getPlayerErr  error
	savePlayerErr error
	boardErr      error

	playerSaves int
	boardSaves  int
	resets      int
}

func newFakeProgressionRepo() *fakeProgressionRepo {
	return &fakeProgressionRepo{players: make(map[sharedtypes.UserID]*progressiontypes.Player)}
}

func (f *fakeProgressionRepo) GetPlayer(_ context.Context, _ sharedtypes.GuildID, userID sharedtypes.UserID) (*progressiontypes.Player, error) {
	if f.getPlayerErr != nil {
		return nil, f.getPlayerErr
	}
	if p, ok := f.players[userID]; ok {
		return p, nil
	}
	p := progressiontypes.NewPlayer(userID)
	f.players[userID] = p
	return p, nil
}

func (f *fakeProgressionRepo) SavePlayer(_ context.Context, _ sharedtypes.GuildID, player *progressiontypes.Player) error {
	if f.savePlayerErr != nil {
		return f.savePlayerErr
	}
	f.players[player.UserID] = player
	f.playerSaves++
	return nil
}

func (f *fakeProgressionRepo) ResetSeasonCounters(_ context.Context, _ sharedtypes.GuildID) error {
	for _, p := range f.players {
		p.MonstersSeason = 0
	}
	f.resets++
	return nil
}

func (f *fakeProgressionRepo) GetBoard(_ context.Context, _ sharedtypes.GuildID) (*progressiontypes.Board, error) {
	if f.boardErr != nil {
		return nil, f.boardErr
	}
	if f.board == nil {
		f.board = progressiontypes.NewBoard()
	}
	return f.board, nil
}

func (f *fakeProgressionRepo) SaveBoard(_ context.Context, _ sharedtypes.GuildID, board *progressiontypes.Board) error {
	if f.boardErr != nil {
		return f.boardErr
	}
	f.board = board
	f.boardSaves++
	return nil
}

func newTestService(repo *fakeProgressionRepo, threshold, goal int) *ProgressionService {
	obs := observability.NoOpProvider()
	metrics := opmetrics.NewPrometheusMetrics(prometheus.NewRegistry(), "progression_test")
	return NewProgressionService(repo, obs.Logger, metrics, noop.NewTracerProvider().Tracer("test"), threshold, goal)
}
