package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"vibin_client/config"
	"vibin_client/routes"
	"vibin_client/services"
	"vibin_client/socket"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg := config.Load()
	log.Printf("Starting Vibin client shell (env %s, backend %s)", cfg.Env, cfg.APIBaseURL)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.OtelEndpoint != "" {
		tp, err := initTracer(ctx, cfg)
		if err != nil {
			log.Printf("❌ Failed to init tracer: %v", err)
		} else {
			defer func() { _ = tp.Shutdown(context.Background()) }()
		}
	}

	// Initialize AWS clients
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWSRegion))
	if err != nil {
		log.Fatalf("Failed to load AWS config: %v", err)
	}

	// Session / auth collaborator
	tokens := services.NewTokenAuth(cfg.JWTSecret, cfg.SessionToken)
	var auth services.AuthProvider = tokens
	if cfg.UsesDynamoSessions() {
		log.Printf("Using DynamoDB sessions from %s for device %s", cfg.SessionsTable, cfg.DeviceID)
		auth = &services.DynamoSessionAuth{
			Dynamo:   &services.DynamoService{Client: services.InitializeDynamoDBClient(awsCfg)},
			Table:    cfg.SessionsTable,
			DeviceID: cfg.DeviceID,
			Tokens:   tokens,
		}
	}

	var images services.ImageResolver
	if cfg.S3BucketName != "" {
		images = services.NewS3ImageResolver(s3.NewFromConfig(awsCfg), cfg.S3BucketName, cfg.ImageURLExpiry)
		log.Printf("Resolving profile photo keys from bucket %s", cfg.S3BucketName)
	}

	api := services.NewAPIClient(cfg.APIBaseURL, auth, cfg.RequestTimeout)
	socketServer := socket.NewSocketServer()

	screens := services.NewScreenManager(services.ScreenDeps{
		Auth:      auth,
		API:       api,
		Images:    images,
		Notifier:  socketServer,
		Navigator: socketServer,
		FeedLimit: cfg.FeedLimit,
	})
	defer screens.CloseAll()

	// Initialize the router
	r := mux.NewRouter()
	routes.RegisterRoutes(r)
	routes.RegisterScreenRoutes(r, screens)
	r.PathPrefix("/socket.io/").Handler(socketServer.Handler())

	// Add CORS middleware
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}).Handler(r)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           corsHandler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := socketServer.Serve(); err != nil && gctx.Err() == nil {
			return err
		}
		return nil
	})
	g.Go(func() error {
		log.Printf("Starting server on port %s...\n", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Println("🛑 Shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		err := srv.Shutdown(shutdownCtx)
		if cerr := socketServer.Close(); err == nil {
			err = cerr
		}
		return err
	})

	if err := g.Wait(); err != nil {
		log.Printf("❌ Server exited with error: %v", err)
		return
	}
	log.Println("👋 Server exited")
}

func initTracer(ctx context.Context, cfg config.Config) (*sdktrace.TracerProvider, error) {
	exporter, err := otlptracegrpc.New(ctx,
		otlptracegrpc.WithEndpoint(cfg.OtelEndpoint),
		otlptracegrpc.WithInsecure(),
	)
	if err != nil {
		return nil, err
	}

	res, _ := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceNameKey.String("vibin-client"),
			semconv.DeploymentEnvironmentKey.String(cfg.Env),
		),
	)

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))

	return tp, nil
}
