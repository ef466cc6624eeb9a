// Command seedadmin creates an admin account, or resets its password when
// the username already exists.
//
//	go run ./cmd/seedadmin -username admin -password 's3cretpass'
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	_ "github.com/joho/godotenv/autoload" // Autoload .env file.
	"go.uber.org/zap"

	"github.com/sphenegem/gem-inventory-api/cmd/app"
	"github.com/sphenegem/gem-inventory-api/internal/config"
	"github.com/sphenegem/gem-inventory-api/internal/logger"
	"github.com/sphenegem/gem-inventory-api/internal/pkg/jwthelper"
	"github.com/sphenegem/gem-inventory-api/internal/repository"
	"github.com/sphenegem/gem-inventory-api/internal/repository/dao"
	"github.com/sphenegem/gem-inventory-api/internal/service"
)

const minPasswordLength = 8

func main() {
	username := flag.String("username", "admin", "admin username")
	password := flag.String("password", "", "admin password, at least 8 characters")
	flag.Parse()

	if err := run(*username, *password); err != nil {
		fmt.Fprintln(os.Stderr, "seedadmin:", err)
		os.Exit(1)
	}
}

func run(username, password string) error {
	if username == "" {
		return errors.New("-username is required")
	}
	if len(password) < minPasswordLength {
		return fmt.Errorf("-password must be at least %d characters", minPasswordLength)
	}

	conf, err := config.Load(app.ConfigPath())
	if err != nil {
		return fmt.Errorf("config.Load -> %w", err)
	}

	if err := logger.Init(conf.API.Environment); err != nil {
		return fmt.Errorf("logger.Init -> %w", err)
	}
	defer func() { _ = zap.L().Sync() }()

	db, err := app.OpenDatabase(conf)
	if err != nil {
		return fmt.Errorf("app.OpenDatabase -> %w", err)
	}

	repo := repository.NewAdminRepository(dao.NewAdminDAO(db))
	issuer := jwthelper.NewIssuer([]byte(conf.API.JWTSigningKey), conf.API.TokenTTL)
	svc := service.NewAuthService(repo, issuer)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	admin, created, err := svc.EnsureAdmin(ctx, username, password)
	if err != nil {
		return fmt.Errorf("svc.EnsureAdmin -> %w", err)
	}

	if created {
		zap.L().Info("admin created", zap.Uint("id", admin.ID), zap.String("username", admin.Username))
	} else {
		zap.L().Info("admin password reset", zap.Uint("id", admin.ID), zap.String("username", admin.Username))
	}

	return nil
}
