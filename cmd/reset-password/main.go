package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"go-sales-territory/internal/config"
	"go-sales-territory/internal/repository"
	"go-sales-territory/pkg/database"
	"go-sales-territory/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func main() {
	var (
		username = flag.String("username", "admin", "Representative whose password is reset")
		password = flag.String("password", "", "New password (at least 6 characters)")
	)
	flag.Parse()

	if len(*password) < 6 {
		fmt.Fprintln(os.Stderr, "usage: reset-password -username <name> -password <new password>")
		os.Exit(2)
	}

	cfg := config.Load()
	if err := logger.InitLogger(cfg.Server.Env); err != nil {
		panic(err)
	}
	defer logger.Sync()
	log := logger.Get()

	db, err := database.ConnectDB(cfg.Database.DSN(), "production")
	if err != nil {
		log.Fatal("database connection failed", zap.Error(err))
	}
	store := repository.NewStore(db)
	ctx := context.Background()

	rep, err := store.Representatives.FindByUsername(ctx, *username)
	if err != nil {
		log.Fatal("representative not found", zap.String("username", *username), zap.Error(err))
	}

	if err := rep.SetPassword(*password); err != nil {
		log.Fatal("failed to hash password", zap.Error(err))
	}
	if err := store.Representatives.UpdatePassword(ctx, rep.ID, rep.Password); err != nil {
		log.Fatal("failed to update password", zap.Error(err))
	}
	// Existing tokens stop working
	if err := store.Representatives.UpdateSession(ctx, rep.ID, uuid.NewString()); err != nil {
		log.Fatal("failed to reset session", zap.Error(err))
	}

	log.Info("password reset", zap.String("username", rep.Username))
}
