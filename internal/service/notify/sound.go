package notify

import (
	"Tabata/internal/domain"
	ttsplayer "Tabata/internal/service/tts/player"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// SoundNotifier проигрывает короткий звуковой сигнал в начале фазы.
// Для каждого типа фазы можно задать свой файл; без него звучит общий. Пустой общий путь
// и отсутствие отдельных путей выключают сигнал.
type SoundNotifier struct {
	logger *zap.SugaredLogger
	def    string
	byKind map[domain.PhaseKind]string
	ply    ttsplayer.Player
}

// NewSoundNotifier создаёт нотификатор с общим сигналом path.
func NewSoundNotifier(logger *zap.SugaredLogger, path string, ply ttsplayer.Player) *SoundNotifier {
	if ply == nil {
		ply = ttsplayer.New()
	}
	return &SoundNotifier{logger: logger, def: resolve(path), byKind: map[domain.PhaseKind]string{}, ply: ply}
}

// WithKind задаёт отдельный сигнал для фаз типа kind (например, для отдыха).
func (n *SoundNotifier) WithKind(kind domain.PhaseKind, path string) *SoundNotifier {
	if p := resolve(path); p != "" {
		n.byKind[kind] = p
	}
	return n
}

// resolve ищет относительный путь рядом с бинарём, иначе оставляет его от рабочей директории.
func resolve(p string) string {
	p = strings.TrimSpace(p)
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	if exe, err := os.Executable(); err == nil {
		cand := filepath.Join(filepath.Dir(exe), p)
		if _, statErr := os.Stat(cand); statErr == nil {
			return cand
		}
	}
	return filepath.FromSlash(p)
}

// Enabled сообщает, задан ли хотя бы один звуковой файл.
func (n *SoundNotifier) Enabled() bool { return n != nil && (n.def != "" || len(n.byKind) > 0) }

// pathFor выбирает файл для фазы; пустая строка — фаза без сигнала.
func (n *SoundNotifier) pathFor(kind domain.PhaseKind) string {
	if p, ok := n.byKind[kind]; ok {
		return p
	}
	return n.def
}

// Ring запускает проигрывание сигнала фазы в фоне и сразу возвращает управление.
func (n *SoundNotifier) Ring(kind domain.PhaseKind) {
	if !n.Enabled() {
		return
	}
	path := n.pathFor(kind)
	if path == "" {
		return
	}
	go func() { _ = n.play(kind, path) }()
}

// play проигрывает файл; формат определяется по расширению, по умолчанию mp3.
// Ошибки логируются и возвращаются.
func (n *SoundNotifier) play(kind domain.PhaseKind, path string) error {
	f, err := os.Open(path)
	if err != nil {
		n.warn("Failed to open chime file", kind, path, err)
		return err
	}
	defer f.Close()

	format := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if format == "" {
		format = "mp3"
	}
	if err := n.ply.Play(format, f); err != nil {
		n.warn("Failed to play chime", kind, path, err)
		return err
	}
	return nil
}

func (n *SoundNotifier) warn(msg string, kind domain.PhaseKind, path string, err error) {
	if n.logger != nil {
		n.logger.Warnw(msg, "phase", kind, "path", path, "error", err)
	}
}
