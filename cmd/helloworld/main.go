// Command helloworld serves the greeting and blog listing demo
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/Aidin1998/apiexercises/docs"
	"github.com/Aidin1998/apiexercises/internal/app"
	"github.com/Aidin1998/apiexercises/internal/helloworld"
	"go.uber.org/zap"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, "helloworld")
	if err != nil {
		log.Fatalf("Failed to start: %v", err)
	}

	helloworld.NewHandler(a.Config.HelloWorld.MaxRepeat).RegisterRoutes(a.Server.Router())

	if err := a.Run(ctx); err != nil {
		a.Logger.Fatal("Server stopped with error", zap.Error(err))
	}
}
