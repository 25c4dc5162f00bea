package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	sessionUseCase "github.com/codecollab/server/internal/session/usecase"
)

// RunCleanRevocations purges revocation records whose token has already expired.
// Only the database revocation store keeps such rows; redis and memory expire them
// on their own. With dryRun set the rows are counted but kept.
//
// Requirements: Database must be migrated and accessible.
func RunCleanRevocations(
	ctx context.Context,
	cleaner sessionUseCase.RevocationCleaner,
	logger *slog.Logger,
	io IOTuple,
	now time.Time,
	dryRun bool,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	logger.Info("cleaning expired revocations", slog.Bool("dry_run", dryRun))

	count, err := cleaner.DeleteExpired(ctx, now, dryRun)
	if err != nil {
		return fmt.Errorf("failed to clean revocations: %w", err)
	}

	if format == formatJSON {
		if err := writeJSON(io.Writer, map[string]interface{}{
			"count":   count,
			"dry_run": dryRun,
		}); err != nil {
			return err
		}
	} else if dryRun {
		_, _ = fmt.Fprintf(io.Writer, "Dry-run mode: Would delete %d expired revocation(s)\n", count)
	} else {
		_, _ = fmt.Fprintf(io.Writer, "Successfully deleted %d expired revocation(s)\n", count)
	}

	logger.Info("cleanup completed",
		slog.Int64("count", count),
		slog.Bool("dry_run", dryRun),
	)
	return nil
}
