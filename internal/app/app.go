package app

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/taekwondodev/bitcoin-p2p/internal/cli"
	"github.com/taekwondodev/bitcoin-p2p/internal/config"
	"github.com/taekwondodev/bitcoin-p2p/internal/p2p"
)

type App struct {
	config  *config.Config
	log     zerolog.Logger
	node    *p2p.Node
	signals chan os.Signal
}

func New(cfg *config.Config) (*App, error) {
	log := newLogger(cfg.LogLevel)

	node, err := p2p.NewNode(cfg, log.With().Str("component", "p2p").Logger())
	if err != nil {
		return nil, err
	}

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	return &App{
		config:  cfg,
		log:     log,
		node:    node,
		signals: signals,
	}, nil
}

func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(lvl).
		With().Timestamp().Logger()
}

// Start runs the node until a signal arrives or, in interactive mode, the
// prompt exits.
func (a *App) Start() error {
	errCh := make(chan error, 1)
	go func() { errCh <- a.node.Start() }()

	if a.config.Interactive {
		prompt := cli.NewCLI(a.node)
		go prompt.Run()

		select {
		case <-a.signals:
		case <-prompt.Done():
		case err := <-errCh:
			return err
		}
	} else {
		a.log.Info().Msg("running in non-interactive mode, use -interactive for a prompt")

		select {
		case <-a.signals:
		case err := <-errCh:
			return err
		}
	}

	a.log.Info().Msg("shutting down")
	return nil
}

func (a *App) Shutdown() {
	a.node.Stop()
}
