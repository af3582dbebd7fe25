// Command createadmin seeds the first admin account interactively. The web
// app has no registration flow, so this is the only way accounts get created.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/helpdesk-labs/ticketera/internal/config"
	"github.com/helpdesk-labs/ticketera/internal/observability"
	"github.com/helpdesk-labs/ticketera/internal/persistence"
	"github.com/helpdesk-labs/ticketera/internal/repository"
	"github.com/helpdesk-labs/ticketera/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx := context.Background()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	username, password, err := promptCredentials(os.Stdin)
	if err != nil {
		logger.Fatal("failed to read credentials", zap.Error(err))
	}

	authService := service.NewAuthService(cfg.Auth, repository.NewUserRepository(pg.PoolHandle()))
	user, err := authService.CreateAdmin(ctx, username, password)
	if err != nil {
		if errors.Is(err, service.ErrUsernameTaken) {
			fmt.Fprintln(os.Stderr, "Ya existe ese usuario.")
			os.Exit(1)
		}
		logger.Fatal("failed to create admin", zap.Error(err))
	}

	fmt.Printf("Admin %q creado (id=%d).\n", user.Username, user.ID)
}

func promptCredentials(in *os.File) (string, string, error) {
	reader := bufio.NewReader(in)

	fmt.Print("Usuario admin: ")
	username, err := reader.ReadString('\n')
	if err != nil {
		return "", "", err
	}
	username = strings.TrimSpace(username)
	if username == "" {
		return "", "", errors.New("username must not be empty")
	}

	fmt.Print("Contraseña: ")
	password, err := readPassword(in, reader)
	if err != nil {
		return "", "", err
	}
	if password == "" {
		return "", "", errors.New("password must not be empty")
	}

	return username, password, nil
}

// readPassword suppresses echo when stdin is a terminal and falls back to a
// plain line read when it is piped.
func readPassword(in *os.File, reader *bufio.Reader) (string, error) {
	if term.IsTerminal(int(in.Fd())) {
		raw, err := term.ReadPassword(int(in.Fd()))
		fmt.Println()
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(raw)), nil
	}
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
