package domain

import (
	"errors"
	"fmt"
	"iter"
	"math"
	"time"
)

// ErrInvalidSession — параметры тренировки не проходят валидацию.
var ErrInvalidSession = errors.New("invalid session")

// maxWarmUpNotify ограничивает окно отсчёта разминки: "Begin WARM UP" звучит около 3 секунд.
const maxWarmUpNotify = 5

// MaxTotalSeconds — предел длительности всей тренировки: она должна помещаться в time.Duration.
const MaxTotalSeconds = math.MaxInt64 / int64(time.Second)

// Session описывает всю тренировку. Создаётся один раз из пользовательского ввода.
type Session struct {
	Rounds   int
	LeadIn   int // разминка перед первым раундом, в секундах; 0 — без разминки
	Activity int // длительность активной фазы, в секундах
	Rest     int // длительность отдыха, в секундах
	Notify   int // окно обратного отсчёта для активной фазы и отдыха
}

func NewSession(rounds, leadIn, activity, rest, notify int) (Session, error) {
	s := Session{Rounds: rounds, LeadIn: leadIn, Activity: activity, Rest: rest, Notify: notify}
	if err := s.Validate(); err != nil {
		return Session{}, err
	}
	return s, nil
}

// Validate проверяет, что из параметров можно построить корректный план фаз.
func (s Session) Validate() error {
	if s.Rounds <= 0 {
		return fmt.Errorf("%w: rounds must be positive, got %d", ErrInvalidSession, s.Rounds)
	}
	if s.LeadIn < 0 {
		return fmt.Errorf("%w: lead-in must not be negative, got %d", ErrInvalidSession, s.LeadIn)
	}
	if s.Activity <= 0 || s.Rest <= 0 {
		return fmt.Errorf("%w: activity and rest must be positive, got %d/%d", ErrInvalidSession, s.Activity, s.Rest)
	}
	if s.Notify < 0 || s.Notify > s.Activity {
		return fmt.Errorf("%w: notify window %d must fit into activity %d", ErrInvalidSession, s.Notify, s.Activity)
	}
	// Отдых проверяется только если он вообще будет: при одном раунде его нет.
	if s.Rounds > 1 && s.Notify > s.Rest {
		return fmt.Errorf("%w: notify window %d must fit into rest %d", ErrInvalidSession, s.Notify, s.Rest)
	}
	if _, ok := s.totalSeconds(); !ok {
		return fmt.Errorf("%w: workout is too long (limit %ds)", ErrInvalidSession, MaxTotalSeconds)
	}
	return nil
}

// totalSeconds считает leadIn + rounds*activity + (rounds-1)*rest без переполнения.
func (s Session) totalSeconds() (int64, bool) {
	lead, rounds := int64(s.LeadIn), int64(s.Rounds)
	activity, rest := int64(s.Activity), int64(s.Rest)
	if lead > MaxTotalSeconds || activity > MaxTotalSeconds || rest > MaxTotalSeconds {
		return 0, false
	}
	budget := MaxTotalSeconds - lead
	if rounds > budget/activity {
		return 0, false
	}
	budget -= rounds * activity
	if rounds > 1 && rounds-1 > budget/rest {
		return 0, false
	}
	return MaxTotalSeconds - budget + max(rounds-1, 0)*rest, true
}

// Total — длительность всей тренировки, включая разминку.
func (s Session) Total() time.Duration {
	total, ok := s.totalSeconds()
	if !ok {
		return 0
	}
	return time.Duration(total) * time.Second
}

// WarmUpNotify — окно отсчёта для разминки: min(leadIn/2, 5).
func WarmUpNotify(leadIn int) int {
	return min(leadIn/2, maxWarmUpNotify)
}

// Step — фаза плана с номером раунда, к которому она относится (0 для разминки).
type Step struct {
	Round int
	Phase Phase
}

// Plan возвращает упорядоченную последовательность фаз: разминка (если задана), затем
// ACTIVITY и REST попеременно; после последнего раунда отдыха нет.
// Фазы выдаются лениво, план целиком в памяти не строится.
func (s Session) Plan() (iter.Seq[Step], error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	var warmUp, rest Phase
	var err error
	if s.LeadIn > 0 {
		if warmUp, err = NewPhase(WarmUp, s.LeadIn, WarmUpNotify(s.LeadIn)); err != nil {
			return nil, err
		}
	}
	activity, err := NewPhase(Activity, s.Activity, s.Notify)
	if err != nil {
		return nil, err
	}
	if s.Rounds > 1 {
		if rest, err = NewPhase(Rest, s.Rest, s.Notify); err != nil {
			return nil, err
		}
	}

	return func(yield func(Step) bool) {
		if s.LeadIn > 0 && !yield(Step{Round: 0, Phase: warmUp}) {
			return
		}
		for round := 1; round <= s.Rounds; round++ {
			if !yield(Step{Round: round, Phase: activity}) {
				return
			}
			if round < s.Rounds && !yield(Step{Round: round, Phase: rest}) {
				return
			}
		}
	}, nil
}
