package usecase

import (
	"context"
	"log/slog"
	"time"

	apperrors "github.com/secretaryhq/secretary/internal/errors"
	secretsDomain "github.com/secretaryhq/secretary/internal/secrets/domain"
)

// SweeperConfig holds expiry sweeper configuration.
type SweeperConfig struct {
	Interval time.Duration
}

// Sweeper defines the interface for the background expiry sweeper.
type Sweeper interface {
	Start(ctx context.Context) error
	// Sweep runs one reclamation pass and returns the secrets it deleted.
	Sweep(ctx context.Context) ([]*secretsDomain.Secret, error)
	// ListExpired returns the secrets a sweep would delete, without deleting.
	ListExpired(ctx context.Context) ([]*secretsDomain.Secret, error)
}

// secretSweeper periodically reclaims secrets whose availability window has
// closed. It is a safety net behind the on-access expiry check, so secrets
// nobody ever asks for still get destroyed.
type secretSweeper struct {
	config     SweeperConfig
	secretRepo SecretRepository
	logger     *slog.Logger
	now        func() time.Time
}

// Start runs the sweep loop until the context is cancelled.
func (s *secretSweeper) Start(ctx context.Context) error {
	if s.logger != nil {
		s.logger.Info("starting expiry sweeper",
			slog.Duration("interval", s.config.Interval),
		)
	}

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			if s.logger != nil {
				s.logger.Info("stopping expiry sweeper")
			}
			return ctx.Err()
		case <-ticker.C:
			if _, err := s.Sweep(ctx); err != nil {
				if s.logger != nil {
					s.logger.Error("failed to sweep expired secrets", slog.Any("error", err))
				}
			}
		}
	}
}

// Sweep deletes every expired secret it can. A failure on one secret is
// logged and the pass continues; the next tick retries whatever remains.
func (s *secretSweeper) Sweep(ctx context.Context) ([]*secretsDomain.Secret, error) {
	expired, err := s.secretRepo.ListExpired(ctx, s.now())
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list expired secrets")
	}

	if len(expired) == 0 {
		return nil, nil
	}

	if s.logger != nil {
		s.logger.Info("sweeping expired secrets", slog.Int("count", len(expired)))
	}

	deleted := make([]*secretsDomain.Secret, 0, len(expired))
	for _, secret := range expired {
		if err := s.secretRepo.Delete(ctx, secret.ID); err != nil {
			if s.logger != nil {
				s.logger.Error("failed to delete expired secret",
					slog.String("secret_id", secret.ID.String()),
					slog.Any("error", err),
				)
			}
			continue
		}
		deleted = append(deleted, secret)
	}

	return deleted, nil
}

// ListExpired returns the current sweep candidates without deleting them.
func (s *secretSweeper) ListExpired(ctx context.Context) ([]*secretsDomain.Secret, error) {
	return s.secretRepo.ListExpired(ctx, s.now())
}

// NewSweeper creates a new expiry sweeper.
func NewSweeper(config SweeperConfig, secretRepo SecretRepository, logger *slog.Logger) Sweeper {
	return &secretSweeper{
		config:     config,
		secretRepo: secretRepo,
		logger:     logger,
		now:        func() time.Time { return time.Now().UTC() },
	}
}
