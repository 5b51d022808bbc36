package player

import (
	"errors"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/wav"
)

// ErrUnsupportedFormat — формат, который нельзя проиграть напрямую.
var ErrUnsupportedFormat = errors.New("unsupported format for direct playback; use mp3 or wav")

// Player воспроизводит аудио потоком в зависимости от формата.
type Player interface {
	Play(format string, r io.ReadCloser) error
}

// Default реализует Player и поддерживает mp3 и wav.
// Воспроизведения сериализуются: speaker в beep один на процесс.
type Default struct {
	volumeDB float64
	mu       sync.Mutex
}

// New создаёт плеер без изменения громкости (0 dB).
func New() *Default { return &Default{} }

// NewWithVolume создаёт плеер с предустановленной громкостью в dB (отрицательные — тише).
func NewWithVolume(db float64) *Default { return &Default{volumeDB: db} }

func decoder(format string) (func(io.ReadCloser) (beep.StreamSeekCloser, beep.Format, error), error) {
	switch strings.ToLower(format) {
	case "wav":
		return func(r io.ReadCloser) (beep.StreamSeekCloser, beep.Format, error) { return wav.Decode(r) }, nil
	case "mp3":
		return mp3.Decode, nil
	default:
		return nil, ErrUnsupportedFormat
	}
}

// Play декодирует поток и блокирует до окончания воспроизведения.
func (d *Default) Play(format string, r io.ReadCloser) error {
	decode, err := decoder(format)
	if err != nil {
		return err
	}
	streamer, f, err := decode(r)
	if err != nil {
		return err
	}
	defer streamer.Close()

	d.mu.Lock()
	defer d.mu.Unlock()

	if err := speaker.Init(f.SampleRate, f.SampleRate.N(time.Second/10)); err != nil {
		return err
	}
	vol := &effects.Volume{
		Streamer: streamer,
		Base:     2,
		Volume:   d.volumeDB,
		Silent:   false,
	}
	done := make(chan struct{})
	speaker.Play(beep.Seq(vol, beep.Callback(func() { close(done) })))
	<-done
	return nil
}
