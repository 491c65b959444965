package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Router assembles the chi mux: middleware chain, public routes and the
// token-guarded posting route.
func (a *API) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(a.RequestLogger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))

	r.Get("/health", a.Health)

	r.Post("/register", a.Register)
	r.Post("/login", a.Login)
	r.Post("/validateToken", a.ValidateToken)

	r.Get("/posts", a.ListPosts)
	r.With(a.RequireUser).Post("/posts", a.CreatePost)

	r.Get("/users/{id}", a.GetUser)
	r.Get("/users/{id}/posts", a.ListUserPosts)

	return r
}

// Run serves the API on addr until ctx is cancelled, then shuts the server
// down gracefully.
func (a *API) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:    addr,
		Handler: a.Router(),
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info(ctx, "http server starting", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	a.logger.Info(ctx, "http server stopping")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}
