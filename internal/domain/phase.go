package domain

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidPhase — параметры фазы не проходят валидацию.
var ErrInvalidPhase = errors.New("invalid phase")

// PhaseKind — тип фазы тренировки. Строковое значение произносится как есть.
type PhaseKind string

const (
	Activity PhaseKind = "ACTIVITY"
	Rest     PhaseKind = "REST"
	WarmUp   PhaseKind = "WARM UP"
)

// Label возвращает подпись фазы для озвучки.
func (k PhaseKind) Label() string { return string(k) }

// Phase — один отрезок тренировки фиксированной длительности.
// NotifyWindow — сколько последних секунд фазы озвучивается обратный отсчёт.
type Phase struct {
	Kind         PhaseKind
	Duration     int
	NotifyWindow int
}

// NewPhase создаёт фазу и проверяет инварианты 0 <= NotifyWindow <= Duration, Duration > 0.
func NewPhase(kind PhaseKind, duration, notifyWindow int) (Phase, error) {
	switch kind {
	case Activity, Rest, WarmUp:
	default:
		return Phase{}, fmt.Errorf("%w: unknown kind %q", ErrInvalidPhase, kind)
	}
	if duration <= 0 {
		return Phase{}, fmt.Errorf("%w: duration must be positive, got %d", ErrInvalidPhase, duration)
	}
	if notifyWindow < 0 || notifyWindow > duration {
		return Phase{}, fmt.Errorf("%w: notify window %d must be within [0, %d]", ErrInvalidPhase, notifyWindow, duration)
	}
	return Phase{Kind: kind, Duration: duration, NotifyWindow: notifyWindow}, nil
}

// Length возвращает длительность фазы как time.Duration.
func (p Phase) Length() time.Duration { return time.Duration(p.Duration) * time.Second }

// CountdownStart — смещение от начала фазы, с которого начинается обратный отсчёт.
func (p Phase) CountdownStart() time.Duration {
	return time.Duration(p.Duration-p.NotifyWindow) * time.Second
}
