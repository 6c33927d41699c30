package libris

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-logr/logr"
	"github.com/go-logr/stdr"
	graphql "github.com/graph-gophers/graphql-go"
	"github.com/graph-gophers/graphql-go/relay"
	"github.com/spf13/cobra"

	"github.com/jkarvo/libris/internal/auth"
	"github.com/jkarvo/libris/internal/config"
	"github.com/jkarvo/libris/internal/graph"
)

var serveMemory bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the GraphQL server",
	Long: `Start an HTTP server that serves the GraphQL API.

The server exposes:
  - GraphQL endpoint at /graphql (POST)
  - GraphiQL at /graphql (GET) for interactive queries
  - Health probe at /healthz

Examples:
  # Serve the configured MongoDB database
  libris serve

  # Serve an empty in-memory store for local experiments
  libris serve --memory`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServer(cmd.Context())
	},
}

func runServer(ctx context.Context) error {
	logger := stdr.New(log.Default())
	ctx = logr.NewContext(ctx, logger)

	store, cleanup, err := openStore(ctx, serveMemory)
	if err != nil {
		return err
	}
	defer cleanup()

	var verifier auth.Verifier = auth.FixedSecret{Secret: cfg.LoginSecret}
	if cfg.CredentialScheme == config.SchemeBcrypt {
		verifier = auth.BcryptVerifier{}
	}

	resolver := graph.New(store, verifier, cfg.JWTSecret)
	schema, err := graphql.ParseSchema(graph.Schema, resolver)
	if err != nil {
		return fmt.Errorf("parsing schema: %w", err)
	}

	authResolver := &auth.Resolver{Store: store, Secret: cfg.JWTSecret}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(func(c *gin.Context) {
		c.Request = c.Request.WithContext(logr.NewContext(c.Request.Context(), logger))
		c.Next()
	})
	router.Use(auth.Middleware(authResolver))

	gqlHandler := &relay.Handler{Schema: schema}
	router.POST("/graphql", gin.WrapH(gqlHandler))
	router.GET("/graphql", func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(graphiqlPage))
	})
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	server := &http.Server{
		Addr:         cfg.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", cfg.Addr)
		serverErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		if err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
		logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

func init() {
	serveCmd.Flags().BoolVar(&serveMemory, "memory", false, "Serve an in-memory store instead of MongoDB")
	rootCmd.AddCommand(serveCmd)
}
