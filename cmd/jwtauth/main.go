// Command jwtauth serves registration, login and bearer token protected
// profiles.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/Aidin1998/apiexercises/docs"
	"github.com/Aidin1998/apiexercises/internal/app"
	"github.com/Aidin1998/apiexercises/internal/auth"
	"github.com/Aidin1998/apiexercises/internal/identities"
	"go.uber.org/zap"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, "jwtauth")
	if err != nil {
		log.Fatalf("Failed to start: %v", err)
	}

	tokens, err := auth.NewTokenService(a.Config.JWT)
	if err != nil {
		a.Logger.Fatal("Invalid token settings", zap.Error(err))
	}

	db, err := a.Database(ctx, &identities.User{})
	if err != nil {
		a.Logger.Fatal("Failed to open database", zap.Error(err))
	}

	svc := identities.NewService(a.Logger.Named("identities"), db, tokens)
	identities.NewHandler(a.Logger, svc, tokens, a.LoginLimiter()).RegisterRoutes(a.Server.Router())

	if err := a.Run(ctx); err != nil {
		a.Logger.Fatal("Server stopped with error", zap.Error(err))
	}
}
