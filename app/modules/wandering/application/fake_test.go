package wanderingservice

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/trace/noop"

	progressionservice "github.com/jollyfox-guild/vale-bot/app/modules/progression/application"
	progressionevents "github.com/jollyfox-guild/vale-bot/app/shared/events/progression"
	"github.com/jollyfox-guild/vale-bot/app/shared/observability"
	"github.com/jollyfox-guild/vale-bot/app/shared/observability/opmetrics"
	"github.com/jollyfox-guild/vale-bot/app/shared/results"
	sharedtypes "github.com/jollyfox-guild/vale-bot/app/shared/types/shared"
	wanderingtypes "github.com/jollyfox-guild/vale-bot/app/shared/types/wandering"
)

// fakeEventRepo keeps the single event slot in memory.
type fakeEventRepo struct {
	event   *wanderingtypes.Event
	loadErr error
	saveErr error
	saves   int
}

func (f *fakeEventRepo) Load(_ context.Context, _ sharedtypes.GuildID) (*wanderingtypes.Event, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	return f.event, nil
}

func (f *fakeEventRepo) Save(_ context.Context, _ sharedtypes.GuildID, event *wanderingtypes.Event) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.event = event
	f.saves++
	return nil
}

// fakeProgression satisfies the progression service surface; wandering only
// exercises PlayerFaction and AwardEventRewards.
type fakeProgression struct {
	factions map[sharedtypes.UserID]sharedtypes.FactionID

	awardReport *progressionservice.RewardReport
	awardErr    error
	awards      []progressionservice.EventRewards
}

func newFakeProgression() *fakeProgression {
	return &fakeProgression{
		factions:    make(map[sharedtypes.UserID]sharedtypes.FactionID),
		awardReport: &progressionservice.RewardReport{},
	}
}

func (f *fakeProgression) PlayerFaction(_ context.Context, _ sharedtypes.GuildID, userID sharedtypes.UserID) (sharedtypes.FactionID, error) {
	return f.factions[userID], nil
}

func (f *fakeProgression) AwardEventRewards(_ context.Context, _ sharedtypes.GuildID, rewards progressionservice.EventRewards) (*progressionservice.RewardReport, error) {
	if f.awardErr != nil {
		return nil, f.awardErr
	}
	f.awards = append(f.awards, rewards)
	return f.awardReport, nil
}

func (f *fakeProgression) GetProfile(context.Context, sharedtypes.GuildID, sharedtypes.UserID) (results.OperationResult, error) {
	return results.OperationResult{}, nil
}

func (f *fakeProgression) JoinFaction(context.Context, *progressionevents.JoinFactionRequestedPayload) (results.OperationResult, error) {
	return results.OperationResult{}, nil
}

func (f *fakeProgression) GetScoreboard(context.Context, sharedtypes.GuildID) (results.OperationResult, error) {
	return results.OperationResult{}, nil
}

func (f *fakeProgression) ResetSeason(context.Context, sharedtypes.GuildID, string) (results.OperationResult, error) {
	return results.OperationResult{}, nil
}

type scheduledJob struct {
	eventID string
	at      time.Time
}

// fakeScheduler records timer arms instead of inserting queue jobs.
type fakeScheduler struct {
	resolutions []scheduledJob
	clears      []scheduledJob
}

func (f *fakeScheduler) ScheduleResolution(_ context.Context, _ sharedtypes.GuildID, eventID string, at time.Time) error {
	f.resolutions = append(f.resolutions, scheduledJob{eventID: eventID, at: at})
	return nil
}

func (f *fakeScheduler) ScheduleClear(_ context.Context, _ sharedtypes.GuildID, eventID string, at time.Time) error {
	f.clears = append(f.clears, scheduledJob{eventID: eventID, at: at})
	return nil
}

type testHarness struct {
	repo        *fakeEventRepo
	progression *fakeProgression
	scheduler   *fakeScheduler
	svc         *WanderingService
}

func newTestHarness() *testHarness {
	repo := &fakeEventRepo{}
	progression := newFakeProgression()
	scheduler := &fakeScheduler{}

	obs := observability.NoOpProvider()
	metrics := opmetrics.NewPrometheusMetrics(prometheus.NewRegistry(), "wandering_test")
	svc := NewWanderingService(repo, progression, obs.Logger, metrics, noop.NewTracerProvider().Tracer("test"), 2*time.Minute)
	svc.SetScheduler(scheduler)
	svc.randInt = func(n int) int { return 0 }

	return &testHarness{repo: repo, progression: progression, scheduler: scheduler, svc: svc}
}

// liveEvent returns an unresolved standard event ending an hour from now.
func liveEvent(id string) *wanderingtypes.Event {
	preset := wanderingtypes.DifficultyTable[wanderingtypes.EventStandard]
	event := &wanderingtypes.Event{
		EventID:              id,
		EndsAt:               time.Now().UTC().Add(time.Hour),
		DurationMinutes:      preset.Minutes,
		Title:                "Mistbound Marauders",
		Difficulty:           wanderingtypes.EventStandard,
		RequiredParticipants: preset.RequiredParticipants,
		FactionReward:        preset.FactionReward,
		GlobalReward:         preset.GlobalReward,
		XPReward:             preset.XPReward,
	}
	event.Normalize()
	return event
}
