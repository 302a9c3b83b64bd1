package adapter

import (
	"context"
	"fmt"
	"net"
	"os/exec"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/MKhiriev/go-attendance-sync/internal/config"
	"github.com/MKhiriev/go-attendance-sync/internal/logger"
)

type linkMonitor struct {
	probe    func(ctx context.Context) error
	link     Link
	interval time.Duration
	attempts uint64

	logger *logger.Logger
}

// NewConnectivity returns a [Connectivity] that dials cfg.ProbeAddress over
// TCP and calls link.Reconnect when the probe keeps failing.
func NewConnectivity(cfg config.Connectivity, link Link, logger *logger.Logger) Connectivity {
	return newLinkMonitor(tcpProbe(cfg.ProbeAddress, cfg.RetryInterval), link, cfg, logger)
}

func newLinkMonitor(probe func(ctx context.Context) error, link Link, cfg config.Connectivity, logger *logger.Logger) *linkMonitor {
	attempts := cfg.AttemptsBeforeReconnect
	if attempts == 0 {
		attempts = 1
	}

	return &linkMonitor{
		probe:    probe,
		link:     link,
		interval: cfg.RetryInterval,
		attempts: attempts,
		logger:   logger,
	}
}

func (m *linkMonitor) EnsureConnected(ctx context.Context, forceReconnect bool) error {
	if !forceReconnect {
		err := m.probeRound(ctx)
		if err == nil {
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		m.logger.Warn().Err(err).Str("func", "linkMonitor.EnsureConnected").Uint64("attempts", m.attempts).Msg("link is down")
	}

	for round := 1; ; round++ {
		if err := m.link.Reconnect(ctx); err != nil {
			m.logger.Warn().Err(err).Str("func", "linkMonitor.EnsureConnected").Int("round", round).Msg("reconnect failed")
		}

		err := m.probeRound(ctx)
		if err == nil {
			m.logger.Info().Str("func", "linkMonitor.EnsureConnected").Int("round", round).Msg("link is up")
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		m.logger.Debug().Err(err).Str("func", "linkMonitor.EnsureConnected").Int("round", round).Msg("link still down")
	}
}

// probeRound probes up to m.attempts times, m.interval apart.
func (m *linkMonitor) probeRound(ctx context.Context) error {
	backoff := retry.WithMaxRetries(m.attempts-1, retry.NewConstant(m.interval))
	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		if err := m.probe(ctx); err != nil {
			return retry.RetryableError(err)
		}
		return nil
	})
}

func tcpProbe(address string, timeout time.Duration) func(ctx context.Context) error {
	dialer := &net.Dialer{Timeout: timeout}
	return func(ctx context.Context) error {
		conn, err := dialer.DialContext(ctx, "tcp", address)
		if err != nil {
			return fmt.Errorf("%w: dial %s: %w", ErrConnectivity, address, err)
		}
		return conn.Close()
	}
}

type commandLink struct {
	command string
	logger  *logger.Logger
}

// NewCommandLink returns a [Link] that runs command through "sh -c" on every
// reconnect. With an empty command the reconnect is only logged.
func NewCommandLink(command string, logger *logger.Logger) Link {
	return &commandLink{command: command, logger: logger}
}

func (l *commandLink) Reconnect(ctx context.Context) error {
	if l.command == "" {
		l.logger.Info().Str("func", "commandLink.Reconnect").Msg("no reconnect command configured, waiting for link")
		return nil
	}

	out, err := exec.CommandContext(ctx, "sh", "-c", l.command).CombinedOutput()
	if err != nil {
		return fmt.Errorf("run reconnect command: %w: %s", err, out)
	}

	l.logger.Info().Str("func", "commandLink.Reconnect").Str("command", l.command).Msg("reconnect command finished")
	return nil
}
