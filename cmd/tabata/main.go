package main

import (
	"Tabata/internal/app/clock"
	"Tabata/internal/app/scheduler"
	"Tabata/internal/app/session"
	"Tabata/internal/config"
	"Tabata/internal/domain"
	"Tabata/internal/service/notify"
	"Tabata/internal/service/tts"
	"Tabata/internal/service/tts/player"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := newRootCmd(cfg, runWorkout).Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// workoutFunc проводит тренировку по уже провалидированной конфигурации.
type workoutFunc func(ctx context.Context, cfg *config.Config, s domain.Session) error

func newRootCmd(cfg *config.Config, run workoutFunc) *cobra.Command {
	root := &cobra.Command{
		Use:           "tabata [rounds]",
		Short:         "Voice-announced Tabata interval timer",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.ApplyArgs(args); err != nil {
				_ = cmd.Usage()
				return err
			}
			s, err := cfg.Session()
			if err != nil {
				_ = cmd.Usage()
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return run(ctx, cfg, s)
		},
	}
	cfg.BindFlags(root.Flags())
	return root
}

func newLogger(debug bool) (*zap.Logger, error) {
	zc := zap.NewDevelopmentConfig()
	zc.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	if debug {
		zc.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	return zc.Build()
}

func runWorkout(ctx context.Context, cfg *config.Config, s domain.Session) error {
	logger, err := newLogger(cfg.DebugMode)
	if err != nil {
		return err
	}
	sugar := logger.Sugar()
	//сброс буфера логгера
	defer func() { _ = logger.Sync() }()

	sugar.Debugw("Starting app",
		"rounds", s.Rounds,
		"leadIn", s.LeadIn,
		"speech", cfg.Speech.Command,
		"voice", cfg.Speech.Voice,
	)

	announcer := tts.NewSayAnnouncer(cfg.Speech.Command, cfg.Speech.Voice, sugar)
	sched := scheduler.New(announcer, clock.System{}, sugar)
	chime := notify.NewSoundNotifier(sugar, cfg.Speech.ChimePath, player.NewWithVolume(cfg.Speech.ChimeVolumeDB)).
		WithKind(domain.Rest, cfg.Speech.ChimeRestPath)
	if chime.Enabled() {
		sched.WithCue(chime)
	}

	_, err = session.New(sched, clock.System{}, sugar).Run(ctx, s)
	if errors.Is(err, context.Canceled) {
		sugar.Warnw("Session interrupted")
	}
	return err
}
