// Package server initializes and runs the main application server.
// It wires the database-backed repositories, the profile picture store and
// the HTTP endpoint, and handles graceful shutdown on OS signals.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/microblog/internal/logging"
	"github.com/dmitrijs2005/microblog/internal/server/config"
	"github.com/dmitrijs2005/microblog/internal/server/httpapi"
	"github.com/dmitrijs2005/microblog/internal/server/images"
	"github.com/dmitrijs2005/microblog/internal/server/posts"
	"github.com/dmitrijs2005/microblog/internal/server/shared/db"
	"github.com/dmitrijs2005/microblog/internal/server/users"
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	userService *users.Service
	postService *posts.Service
	imageStore  images.Store
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	sl := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(sl)

	rm, err := db.NewPostgresRepositoryManager(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	is, err := images.NewS3Store(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("image store init error: %w", err)
	}

	us := users.NewService(rm.Users(), c)
	ps := posts.NewService(rm.Posts())

	return &App{
		config:      c,
		logger:      logger,
		userService: us,
		postService: ps,
		imageStore:  is,
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {

	api := httpapi.NewAPI(app.userService, app.postService, app.imageStore, app.config.SecretKey, app.logger)

	if err := api.Run(ctx, app.config.EndpointAddrHTTP); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

}
