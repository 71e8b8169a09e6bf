package commands

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	secretsDomain "github.com/secretaryhq/secretary/internal/secrets/domain"
	usecaseMocks "github.com/secretaryhq/secretary/internal/secrets/usecase/mocks"
)

func TestRunSweepExpired(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	expired := []*secretsDomain.Secret{
		{
			ID:                uuid.New(),
			AvailableUntilUTC: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
		},
		{
			ID:                uuid.New(),
			AvailableUntilUTC: time.Date(2026, 3, 2, 18, 30, 0, 0, time.UTC),
		},
	}

	t.Run("text-output", func(t *testing.T) {
		mockSweeper := &usecaseMocks.MockSweeper{}
		mockSweeper.On("Sweep", ctx).Return(expired, nil)

		var out bytes.Buffer
		err := RunSweepExpired(ctx, mockSweeper, logger, &out, false, "text")

		require.NoError(t, err)
		require.Contains(t, out.String(), "Successfully destroyed 2 expired secret(s)")
		require.Contains(t, out.String(), expired[0].ID.String())
		mockSweeper.AssertExpectations(t)
	})

	t.Run("dry-run-lists-without-deleting", func(t *testing.T) {
		mockSweeper := &usecaseMocks.MockSweeper{}
		mockSweeper.On("ListExpired", ctx).Return(expired, nil)

		var out bytes.Buffer
		err := RunSweepExpired(ctx, mockSweeper, logger, &out, true, "text")

		require.NoError(t, err)
		require.Contains(t, out.String(), "Would destroy 2 expired secret(s)")
		mockSweeper.AssertNotCalled(t, "Sweep", ctx)
		mockSweeper.AssertExpectations(t)
	})

	t.Run("json-output", func(t *testing.T) {
		mockSweeper := &usecaseMocks.MockSweeper{}
		mockSweeper.On("ListExpired", ctx).Return(expired, nil)

		var out bytes.Buffer
		err := RunSweepExpired(ctx, mockSweeper, logger, &out, true, "json")

		require.NoError(t, err)
		require.Contains(t, out.String(), `"count": 2`)
		require.Contains(t, out.String(), `"dry_run": true`)
		require.Contains(t, out.String(), expired[1].ID.String())
		mockSweeper.AssertExpectations(t)
	})

	t.Run("empty-sweep", func(t *testing.T) {
		mockSweeper := &usecaseMocks.MockSweeper{}
		mockSweeper.On("Sweep", ctx).Return([]*secretsDomain.Secret{}, nil)

		var out bytes.Buffer
		err := RunSweepExpired(ctx, mockSweeper, logger, &out, false, "text")

		require.NoError(t, err)
		require.Contains(t, out.String(), "Successfully destroyed 0 expired secret(s)")
		mockSweeper.AssertExpectations(t)
	})

	t.Run("sweep-failure", func(t *testing.T) {
		mockSweeper := &usecaseMocks.MockSweeper{}
		mockSweeper.On("Sweep", ctx).Return(nil, errors.New("db is down"))

		err := RunSweepExpired(ctx, mockSweeper, logger, &bytes.Buffer{}, false, "text")

		require.Error(t, err)
		require.Contains(t, err.Error(), "failed to sweep expired secrets")
		mockSweeper.AssertExpectations(t)
	})
}
