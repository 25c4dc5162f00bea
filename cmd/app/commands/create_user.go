package commands

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"strings"

	userDomain "github.com/codecollab/server/internal/user/domain"
	userUseCase "github.com/codecollab/server/internal/user/usecase"
)

// RunCreateUser creates an account without opening a session. When password is
// empty it is read from io.Reader, one line.
//
// Requirements: Database must be migrated and accessible.
func RunCreateUser(
	ctx context.Context,
	useCase userUseCase.UseCase,
	logger *slog.Logger,
	email string,
	password string,
	format string,
	io IOTuple,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	if password == "" {
		var err error
		password, err = promptPassword(io)
		if err != nil {
			return err
		}
	}

	user, err := useCase.CreateUser(ctx, userUseCase.RegisterUserInput{
		Email:    email,
		Password: password,
	})
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	if format == formatJSON {
		if err := writeJSON(io.Writer, createdUserOutput(user)); err != nil {
			return err
		}
	} else {
		_, _ = fmt.Fprintf(io.Writer, "User created successfully\nID:    %s\nEmail: %s\n", user.ID, user.Email)
	}

	logger.Info("user created", slog.String("user_id", user.ID.String()))
	return nil
}

func promptPassword(io IOTuple) (string, error) {
	_, _ = fmt.Fprint(io.Writer, "Password: ")

	line, err := bufio.NewReader(io.Reader).ReadString('\n')
	password := strings.TrimRight(line, "\r\n")
	if password == "" {
		if err != nil {
			return "", fmt.Errorf("failed to read password: %w", err)
		}
		return "", fmt.Errorf("password is required")
	}
	return password, nil
}

func createdUserOutput(user *userDomain.User) map[string]interface{} {
	return map[string]interface{}{
		"id":         user.ID.String(),
		"email":      user.Email,
		"created_at": user.CreatedAt,
	}
}
