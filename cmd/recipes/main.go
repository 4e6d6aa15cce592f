// Command recipes serves CRUD over recipes
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/Aidin1998/apiexercises/docs"
	"github.com/Aidin1998/apiexercises/internal/app"
	"github.com/Aidin1998/apiexercises/internal/recipes"
	"go.uber.org/zap"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, "recipes")
	if err != nil {
		log.Fatalf("Failed to start: %v", err)
	}

	db, err := a.Database(ctx, &recipes.Recipe{})
	if err != nil {
		a.Logger.Fatal("Failed to open database", zap.Error(err))
	}

	store := recipes.NewStore(a.Logger.Named("recipes"), db)
	recipes.NewHandler(store).RegisterRoutes(a.Server.Router())

	if err := a.Run(ctx); err != nil {
		a.Logger.Fatal("Server stopped with error", zap.Error(err))
	}
}
