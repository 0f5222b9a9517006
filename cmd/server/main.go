package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	scalargo "github.com/bdpiprava/scalar-go"

	"carreto-freight-api/database"
	"carreto-freight-api/internal/assistant"
	assistanthandlers "carreto-freight-api/internal/assistant/handlers"
	assistantservices "carreto-freight-api/internal/assistant/services"
	"carreto-freight-api/internal/auth"
	authhandlers "carreto-freight-api/internal/auth/handlers"
	authservices "carreto-freight-api/internal/auth/services"
	"carreto-freight-api/internal/freight"
	freighthandlers "carreto-freight-api/internal/freight/handlers"
	"carreto-freight-api/internal/freight/repositories"
	freightservices "carreto-freight-api/internal/freight/services"
	"carreto-freight-api/internal/live"
	livehandlers "carreto-freight-api/internal/live/handlers"
	liveservices "carreto-freight-api/internal/live/services"
	notificationservices "carreto-freight-api/internal/notifications/services"
	"carreto-freight-api/internal/quote"
	quotehandlers "carreto-freight-api/internal/quote/handlers"
	"carreto-freight-api/internal/routing"
	routinghandlers "carreto-freight-api/internal/routing/handlers"
	routingmodels "carreto-freight-api/internal/routing/models"
	routingservices "carreto-freight-api/internal/routing/services"
	"carreto-freight-api/internal/session"
	"carreto-freight-api/pkg/config"
	"carreto-freight-api/pkg/envx"
	"carreto-freight-api/pkg/genai"
	"carreto-freight-api/pkg/gmaps"
	"carreto-freight-api/pkg/middleware"
	"carreto-freight-api/pkg/response"
	"carreto-freight-api/pkg/sms"
	"carreto-freight-api/pkg/storage"

	"github.com/google/uuid"

	_ "carreto-freight-api/docs"
)

//	@title			Carreto Freight API
//	@version		1.0.0
//	@description	Freight and moving logistics API: quote wizard with dynamic pricing, driver route simulation and job lifecycle.

//	@host		localhost:8080
//	@BasePath	/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Type "Bearer" followed by a space and the session token.

//	@accept		json
//	@produce	json

func main() {
	if err := run(); err != nil {
		slog.Error("server exited", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run() error {
	if err := envx.LoadEnv(); err != nil {
		return err
	}
	cfg := config.Load()

	logLevel := slog.LevelDebug
	if envx.IsProduction() {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Optional collaborators: each one degrades to nil when unconfigured
	// and the features built on it answer with a pending or 503 shape.
	var geocoder *gmaps.Client
	if cfg.Maps.APIKey != "" {
		var err error
		geocoder, err = gmaps.NewClient(cfg.Maps.APIKey, cfg.Maps.Region)
		if err != nil {
			return fmt.Errorf("google maps client: %w", err)
		}
		logger.Info("google maps client ready", slog.String("region", cfg.Maps.Region))
	} else {
		logger.Warn("GOOGLE_MAPS_API_KEY not set; geocoding and directions disabled")
	}

	var model *genai.Client
	if cfg.Gemini.APIKey != "" {
		var err error
		model, err = genai.NewClient(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model)
		if err != nil {
			return fmt.Errorf("gemini client: %w", err)
		}
		logger.Info("gemini client ready", slog.String("model", cfg.Gemini.Model))
	} else {
		logger.Warn("GEMINI_API_KEY not set; route optimization and assistant disabled")
	}

	var uploads *storage.R2Client
	if cfg.R2.Enabled() {
		var err error
		uploads, err = storage.NewR2Client(storage.R2Config{
			AccountID:       cfg.R2.AccountID,
			AccessKeyID:     cfg.R2.AccessKeyID,
			SecretAccessKey: cfg.R2.SecretAccessKey,
			BucketName:      cfg.R2.BucketName,
			PublicURL:       cfg.R2.PublicURL,
		})
		if err != nil {
			return fmt.Errorf("r2 client: %w", err)
		}
		logger.Info("r2 storage ready", slog.String("bucket", cfg.R2.BucketName))
	}

	var push *notificationservices.PushService
	if cfg.FCM.Enabled() {
		var err error
		push, err = notificationservices.NewPushService(ctx, cfg.FCM, logger)
		if err != nil {
			logger.Warn("fcm unavailable, driver push disabled", slog.String("error", err.Error()))
		}
	}

	texter := sms.NewSender(sms.Config{
		AccountSID: cfg.Twilio.AccountSID,
		APIKey:     cfg.Twilio.APIKey,
		APISecret:  cfg.Twilio.APISecret,
		FromPhone:  cfg.Twilio.FromPhone,
		Enabled:    cfg.Twilio.Enabled,
	}, logger)

	var archive *repositories.JobRepository
	if cfg.Database.Enabled() {
		db, err := database.Connect(cfg.Database)
		if err != nil {
			return fmt.Errorf("database: %w", err)
		}
		defer db.Close()
		archive = repositories.NewJobRepository(db)
		logger.Info("job archive connected")
	} else {
		logger.Info("no database configured, running fully in-memory")
	}

	// Telemetry fan-out hub
	hub := liveservices.NewHub()
	go hub.Run()

	sessions := session.NewManager(session.Factory{
		Directions:   directionsOrNil(geocoder),
		Telemetry:    routingservices.NewRandomTelemetry(cfg.Telemetry),
		TickInterval: cfg.Telemetry.Interval,
		OnTick: func(sessionID uuid.UUID, status routingmodels.RouteStatus) {
			hub.BroadcastTelemetry(sessionID, status)
		},
		Logger: logger,
	}, cfg.JWT.AccessTokenTTL, logger)
	go sessions.Run(ctx)

	// Services
	lifecycle := freightservices.NewLifecycleService()
	routeService := routingservices.NewRouteService(optimizerOrNil(model), directionsOrNil(geocoder), logger)
	authService := authservices.NewAuthService(sessions, cfg.JWT.AccessTokenTTL)
	chatService := assistantservices.NewChatService(modelOrNil(model))

	// Router
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, _ *http.Request) {
		response.Success(w, map[string]any{
			"message":  "Server is running",
			"sessions": sessions.Count(),
		})
	})

	registerDocs(mux)

	auth.RegisterRoutes(mux, authhandlers.NewAuthHandler(authService, logger))
	quote.RegisterRoutes(mux, quotehandlers.NewQuoteHandler(geocoder, texter, push, archive, logger), sessions)
	freight.RegisterRoutes(mux, freighthandlers.NewJobHandler(lifecycle, uploads, archive, logger), sessions)
	routing.RegisterRoutes(mux, routinghandlers.NewRouteHandler(routeService, logger), sessions)
	assistant.RegisterRoutes(mux, assistanthandlers.NewChatHandler(chatService, logger), sessions)
	live.RegisterRoutes(mux, livehandlers.NewWSHandler(hub))

	handler := middleware.Chain(mux,
		middleware.Logging(logger),
		middleware.Recovery(logger),
		middleware.CORS(middleware.CORSConfig{
			AllowedOrigins:   cfg.CORS.AllowedOrigins,
			AllowedMethods:   cfg.CORS.AllowedMethods,
			AllowedHeaders:   cfg.CORS.AllowedHeaders,
			AllowCredentials: cfg.CORS.AllowCredentials,
			MaxAge:           cfg.CORS.MaxAge,
		}),
	)

	server := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           handler,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting",
			slog.String("port", cfg.Server.Port),
			slog.String("docs", fmt.Sprintf("http://localhost:%s/docs", cfg.Server.Port)),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// directionsOrNil keeps a typed nil out of the Directions interface.
func directionsOrNil(c *gmaps.Client) routingservices.Directions {
	if c == nil {
		return nil
	}
	return c
}

// optimizerOrNil keeps a typed nil out of the Optimizer interface.
func optimizerOrNil(c *genai.Client) routingservices.Optimizer {
	if c == nil {
		return nil
	}
	return c
}

// modelOrNil keeps a typed nil out of the assistant Model interface.
func modelOrNil(c *genai.Client) assistantservices.Model {
	if c == nil {
		return nil
	}
	return c
}

func registerDocs(mux *http.ServeMux) {
	mux.HandleFunc("GET /docs/swagger.json", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		http.ServeFile(w, r, "./docs/swagger.json")
	})

	mux.HandleFunc("GET /docs", func(w http.ResponseWriter, _ *http.Request) {
		html, err := scalargo.NewV2(
			scalargo.WithSpecDir("./docs"),
			scalargo.WithBaseFileName("swagger.json"),
			scalargo.WithTheme(scalargo.ThemeAlternate),
			scalargo.WithDarkMode(),
			scalargo.WithLayout(scalargo.LayoutModern),
			scalargo.WithMetaDataOpts(
				scalargo.WithTitle("Carreto Freight API - Documentation"),
			),
			scalargo.WithSidebarVisibility(true),
			scalargo.WithPersistAuth(false),
		)
		if err != nil {
			response.InternalError(w, fmt.Sprintf("Error generating documentation: %v", err))
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, html)
	})
}
