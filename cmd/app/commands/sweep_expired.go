package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/secretaryhq/secretary/internal/app"
	"github.com/secretaryhq/secretary/internal/config"
	secretsDomain "github.com/secretaryhq/secretary/internal/secrets/domain"
	secretsUseCase "github.com/secretaryhq/secretary/internal/secrets/usecase"
)

// RunSweepExpiredCommand wires RunSweepExpired with real dependencies.
func RunSweepExpiredCommand(ctx context.Context, dryRun bool, format string) error {
	cfg := config.Load()

	container := app.NewContainer(cfg)
	logger := container.Logger()

	defer closeContainer(container, logger)

	sweeper, err := container.Sweeper()
	if err != nil {
		return fmt.Errorf("failed to initialize sweeper: %w", err)
	}

	return RunSweepExpired(ctx, sweeper, logger, DefaultIO().Writer, dryRun, format)
}

// RunSweepExpired runs one expiry sweep outside the server's background loop.
// Supports dry-run mode to preview which secrets would be destroyed and both
// text/JSON output formats. The sweeper is injected so tests can supply mocks.
//
// Requirements: Database must be migrated and accessible.
func RunSweepExpired(
	ctx context.Context,
	sweeper secretsUseCase.Sweeper,
	logger *slog.Logger,
	out io.Writer,
	dryRun bool,
	format string,
) error {
	logger.Info("sweeping expired secrets", slog.Bool("dry_run", dryRun))

	var (
		secrets []*secretsDomain.Secret
		err     error
	)
	if dryRun {
		secrets, err = sweeper.ListExpired(ctx)
	} else {
		secrets, err = sweeper.Sweep(ctx)
	}
	if err != nil {
		return fmt.Errorf("failed to sweep expired secrets: %w", err)
	}

	// Output result based on format
	if format == "json" {
		outputSweepJSON(out, secrets, dryRun)
	} else {
		outputSweepText(out, secrets, dryRun)
	}

	logger.Info("sweep completed",
		slog.Int("count", len(secrets)),
		slog.Bool("dry_run", dryRun),
	)

	return nil
}

// outputSweepText outputs the result in human-readable text format.
func outputSweepText(out io.Writer, secrets []*secretsDomain.Secret, dryRun bool) {
	if dryRun {
		fmt.Fprintf(out, "Dry-run mode: Would destroy %d expired secret(s)\n", len(secrets))
	} else {
		fmt.Fprintf(out, "Successfully destroyed %d expired secret(s)\n", len(secrets))
	}

	for _, secret := range secrets {
		fmt.Fprintf(out, "  %s (expired %s)\n", secret.ID, secret.AvailableUntilUTC.Format("2006-01-02 15:04:05 UTC"))
	}
}

// outputSweepJSON outputs the result in JSON format for machine consumption.
func outputSweepJSON(out io.Writer, secrets []*secretsDomain.Secret, dryRun bool) {
	ids := make([]string, 0, len(secrets))
	for _, secret := range secrets {
		ids = append(ids, secret.ID.String())
	}

	result := map[string]interface{}{
		"count":      len(secrets),
		"dry_run":    dryRun,
		"secret_ids": ids,
	}

	jsonBytes, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		fmt.Fprintf(out, "failed to marshal JSON: %v\n", err)
		return
	}

	fmt.Fprintln(out, string(jsonBytes))
}
