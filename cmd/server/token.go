package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/stanielhristov/medical-reservation-sub004/internal/app"
	iauth "github.com/stanielhristov/medical-reservation-sub004/internal/auth"
	"github.com/stanielhristov/medical-reservation-sub004/internal/services"
)

// runToken prints an access token for an existing user. The secret must come
// from configuration; a generated one would not be shared with the server.
func runToken(ctx context.Context, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("medres-server token", flag.ContinueOnError)
	fs.SetOutput(out)

	var configPath, userID string
	fs.StringVar(&configPath, "config", "", "Path to configuration directory or file")
	fs.StringVar(&userID, "user", "", "ID of the user the token is issued for")

	if err := fs.Parse(args); err != nil {
		return err
	}
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return errors.New("token: -user is required")
	}

	cfg, err := loadApplicationConfig(configPath)
	if err != nil {
		return err
	}
	if err := app.EnsureSecretsPresent(cfg); err != nil {
		return fmt.Errorf("token: %w", err)
	}

	db, err := initialiseDatabase(cfg)
	if err != nil {
		return err
	}
	defer closeDatabase(db, nil)

	users, err := services.NewUserService(db)
	if err != nil {
		return err
	}
	token, err := issueToken(ctx, cfg, users, userID)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(out, token)
	return err
}

func issueToken(ctx context.Context, cfg *app.Config, users *services.UserService, userID string) (string, error) {
	user, err := users.GetByID(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("token: %w", err)
	}
	if !user.IsActive {
		return "", fmt.Errorf("token: user %s is inactive", user.ID)
	}

	jwtSvc, err := iauth.NewJWTService(cfg.Auth.JWTServiceConfig())
	if err != nil {
		return "", fmt.Errorf("token: %w", err)
	}
	return jwtSvc.GenerateAccessToken(iauth.AccessTokenInput{
		UserID: user.ID,
		Role:   user.Role,
	})
}
