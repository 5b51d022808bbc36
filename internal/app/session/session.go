package session

import (
	"Tabata/internal/app/clock"
	"Tabata/internal/domain"
	"context"
	"time"

	"go.uber.org/zap"
)

// ClosingPhrase звучит последним действием завершённой тренировки.
const ClosingPhrase = "End Tabata session"

// PhaseRunner проводит одну фазу до конца; реализуется scheduler.Scheduler.
type PhaseRunner interface {
	Run(ctx context.Context, p domain.Phase) error
	Say(text string)
}

// PhaseRun — фактическое время проведения одной фазы.
type PhaseRun struct {
	Round     int
	Kind      domain.PhaseKind
	StartedAt time.Time
	EndedAt   time.Time
}

// Report — итог тренировки.
type Report struct {
	Phases  []PhaseRun
	Elapsed time.Duration
}

// Orchestrator собирает фазы в тренировку и выполняет их строго последовательно.
type Orchestrator struct {
	runner PhaseRunner
	clock  clock.Clock
	logger *zap.SugaredLogger
}

func New(runner PhaseRunner, clk clock.Clock, logger *zap.SugaredLogger) *Orchestrator {
	if clk == nil {
		clk = clock.System{}
	}
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Orchestrator{runner: runner, clock: clk, logger: logger}
}

// Run проводит тренировку. При отмене ctx цикл прерывается сразу,
// заключительная фраза не произносится, возвращается частичный отчёт.
func (o *Orchestrator) Run(ctx context.Context, s domain.Session) (Report, error) {
	steps, err := s.Plan()
	if err != nil {
		return Report{}, err
	}

	start := o.clock.Now()
	var report Report
	sessionStarted := false

	for st := range steps {
		if st.Phase.Kind != domain.WarmUp && !sessionStarted {
			o.logger.Infow("Begin Tabata session", "total", s.Total().String())
			sessionStarted = true
		}
		if st.Phase.Kind == domain.Activity {
			o.logger.Infof("Round %d of %d", st.Round, s.Rounds)
		}

		run := PhaseRun{Round: st.Round, Kind: st.Phase.Kind, StartedAt: o.clock.Now()}
		err := o.runner.Run(ctx, st.Phase)
		run.EndedAt = o.clock.Now()
		report.Phases = append(report.Phases, run)
		if err != nil {
			report.Elapsed = o.clock.Now().Sub(start)
			return report, err
		}
	}

	report.Elapsed = o.clock.Now().Sub(start)
	o.logger.Infow(ClosingPhrase, "elapsed", report.Elapsed.String())
	o.runner.Say(ClosingPhrase)
	return report, nil
}
