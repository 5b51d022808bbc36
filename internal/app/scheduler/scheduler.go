package scheduler

import (
	"Tabata/internal/app/clock"
	"Tabata/internal/domain"
	"Tabata/internal/service/tts"
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	"go.uber.org/zap"
)

// EndsInLead — насколько раньше начала отсчёта звучит "X ends in",
// чтобы фраза успела закончиться до первой цифры.
const EndsInLead = 1500 * time.Millisecond

// Event — одна фраза фазы со смещением от её начала.
type Event struct {
	Offset time.Duration
	Text   string
}

// Cue — дополнительный сигнал в начале фазы (например, звук). Не должен блокировать.
// Ring получает тип фазы, чтобы разные фазы могли звучать по-разному.
type Cue interface {
	Ring(kind domain.PhaseKind)
}

// Plan рассчитывает все фразы фазы в порядке воспроизведения.
// Смещение "ends in" не бывает отрицательным; при равных смещениях сохраняется порядок добавления.
func Plan(p domain.Phase) []Event {
	label := p.Kind.Label()
	events := make([]Event, 0, p.NotifyWindow+2)
	events = append(events, Event{Offset: 0, Text: "Begin " + label})

	if p.NotifyWindow > 0 {
		notifyAt := p.CountdownStart()
		events = append(events, Event{Offset: max(notifyAt-EndsInLead, 0), Text: label + " ends in"})
		for i := p.Duration - p.NotifyWindow; i < p.Duration; i++ {
			events = append(events, Event{
				Offset: time.Duration(i) * time.Second,
				Text:   strconv.Itoa(p.Duration - i),
			})
		}
	}

	sort.SliceStable(events, func(i, j int) bool { return events[i].Offset < events[j].Offset })
	return events
}

// Scheduler проводит одну фазу в реальном времени: озвучивает фразы по плану
// и блокирует ровно на длительность фазы.
type Scheduler struct {
	announcer tts.Announcer
	clock     clock.Clock
	cue       Cue
	logger    *zap.SugaredLogger
}

func New(announcer tts.Announcer, clk clock.Clock, logger *zap.SugaredLogger) *Scheduler {
	if clk == nil {
		clk = clock.System{}
	}
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Scheduler{announcer: announcer, clock: clk, logger: logger}
}

// WithCue добавляет сигнал, который звучит в начале каждой фазы.
func (s *Scheduler) WithCue(c Cue) *Scheduler {
	s.cue = c
	return s
}

// Run выполняет фазу. Все ожидания отсчитываются от абсолютного времени старта,
// поэтому фаза заканчивается в t0+duration независимо от длительности озвучки.
// Отмена ctx прерывает ожидание и возвращает причину отмены.
func (s *Scheduler) Run(ctx context.Context, p domain.Phase) error {
	t0 := s.clock.Now()
	if s.cue != nil {
		s.cue.Ring(p.Kind)
	}

	for _, ev := range Plan(p) {
		if err := s.clock.WaitUntil(ctx, t0.Add(ev.Offset)); err != nil {
			return fmt.Errorf("phase %s interrupted: %w", p.Kind, err)
		}
		s.say(ev.Text)
	}

	if err := s.clock.WaitUntil(ctx, t0.Add(p.Length())); err != nil {
		return fmt.Errorf("phase %s interrupted: %w", p.Kind, err)
	}
	return nil
}

// Say логирует и произносит произвольную фразу вне плана фазы.
func (s *Scheduler) Say(text string) { s.say(text) }

func (s *Scheduler) say(text string) {
	s.logger.Debugw("say", "text", text)
	if s.announcer != nil {
		s.announcer.Announce(text)
	}
}
