// Command instaclone serves users, photo posts, comments and likes
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/Aidin1998/apiexercises/docs"
	"github.com/Aidin1998/apiexercises/internal/app"
	"github.com/Aidin1998/apiexercises/internal/instaclone"
	"go.uber.org/zap"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, "instaclone")
	if err != nil {
		log.Fatalf("Failed to start: %v", err)
	}

	db, err := a.Database(ctx, instaclone.Models()...)
	if err != nil {
		a.Logger.Fatal("Failed to open database", zap.Error(err))
	}

	objects, err := a.Storage(ctx)
	if err != nil {
		a.Logger.Fatal("Failed to set up object storage", zap.Error(err))
	}

	logger := a.Logger.Named("instaclone")
	svc := instaclone.NewService(logger, instaclone.NewStore(logger, db), objects, a.Config.Storage.MaxUploadBytes)
	instaclone.NewHandler(svc).RegisterRoutes(a.Server.Router())

	if err := a.Run(ctx); err != nil {
		a.Logger.Fatal("Server stopped with error", zap.Error(err))
	}
}
