package commands

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	apperrors "github.com/codecollab/server/internal/errors"
	userUseCase "github.com/codecollab/server/internal/user/usecase"
)

// maxImportLineSize caps one JSON line of the export.
const maxImportLineSize = 64 * 1024

// ImportSummary reports the outcome of an import run.
type ImportSummary struct {
	Imported int           `json:"imported"`
	Skipped  int           `json:"skipped"`
	Failed   int           `json:"failed"`
	Errors   []ImportError `json:"errors,omitempty"`
}

// ImportError describes one line that could not be imported.
type ImportError struct {
	Line    int    `json:"line"`
	Email   string `json:"email,omitempty"`
	Message string `json:"message"`
}

// RunImportUsers reads a JSON-lines export of legacy accounts, one
// {"email": ..., "password": <hash>} object per line, and creates each account with
// its existing hash. Blank lines are ignored. Accounts that already exist are
// skipped. Other failures are reported and the import goes on, unless failFast is set.
//
// Requirements: Database must be migrated and accessible.
func RunImportUsers(
	ctx context.Context,
	useCase userUseCase.UseCase,
	logger *slog.Logger,
	format string,
	failFast bool,
	io IOTuple,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	summary := ImportSummary{}

	scanner := bufio.NewScanner(io.Reader)
	scanner.Buffer(make([]byte, 0, 4096), maxImportLineSize)

	lineNumber := 0
	for scanner.Scan() {
		lineNumber++

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var input userUseCase.ImportUserInput
		if err := json.Unmarshal([]byte(line), &input); err != nil {
			summary.fail(lineNumber, "", fmt.Sprintf("invalid JSON: %v", err))
			if failFast {
				break
			}
			continue
		}

		_, err := useCase.ImportUser(ctx, input)
		switch {
		case err == nil:
			summary.Imported++
		case apperrors.Is(err, apperrors.ErrConflict):
			summary.Skipped++
			logger.Debug("user already exists, skipping", slog.Int("line", lineNumber))
		default:
			summary.fail(lineNumber, input.Email, err.Error())
		}

		if failFast && summary.Failed > 0 {
			break
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read import file: %w", err)
	}

	if format == formatJSON {
		if err := writeJSON(io.Writer, summary); err != nil {
			return err
		}
	} else {
		summary.writeText(io)
	}

	logger.Info("user import completed",
		slog.Int("imported", summary.Imported),
		slog.Int("skipped", summary.Skipped),
		slog.Int("failed", summary.Failed),
	)

	if summary.Failed > 0 {
		return fmt.Errorf("%d user(s) could not be imported", summary.Failed)
	}
	return nil
}

func (s *ImportSummary) fail(line int, email, message string) {
	s.Failed++
	s.Errors = append(s.Errors, ImportError{Line: line, Email: email, Message: message})
}

func (s *ImportSummary) writeText(io IOTuple) {
	for _, e := range s.Errors {
		_, _ = fmt.Fprintf(io.Writer, "line %d: %s\n", e.Line, e.Message)
	}
	_, _ = fmt.Fprintf(io.Writer, "Imported %d user(s), skipped %d existing, %d failed\n",
		s.Imported, s.Skipped, s.Failed)
}
