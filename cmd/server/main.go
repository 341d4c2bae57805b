package main

import (
	"context"
	"log"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"google.golang.org/grpc"

	bookingv1 "training-booking-api/api/booking/v1"
	"training-booking-api/internal/auth"
	"training-booking-api/internal/booking"
	"training-booking-api/internal/config"
	"training-booking-api/internal/credits"
	"training-booking-api/internal/grpcweb"
	"training-booking-api/internal/handler"
	"training-booking-api/internal/middleware"
	"training-booking-api/internal/mq"
	"training-booking-api/internal/notify"
	"training-booking-api/internal/settings"
	"training-booking-api/internal/store"
	"training-booking-api/internal/store/memstore"
	"training-booking-api/internal/telemetry"
)

// backend is what both store implementations provide.
type backend interface {
	booking.Store
	handler.UserStore
	handler.TokenStore
	credits.Store
	notify.NotificationStore
	settings.Store
	PurgeRefreshTokens(ctx context.Context, cutoff time.Time) (int64, error)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing := telemetry.Setup(ctx, telemetry.Options{
		ServiceName: cfg.ServiceName,
		Endpoint:    cfg.OTLPEndpoint,
		Insecure:    cfg.OTLPInsecure,
	})
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(sctx); err != nil {
			log.Printf("telemetry shutdown: %v", err)
		}
	}()

	var st backend
	switch cfg.Store {
	case "memory":
		log.Println("using in-memory store")
		st = memstore.New()
	default:
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("db: %v", err)
		}
		defer pool.Close()
		if err := pool.Ping(ctx); err != nil {
			log.Fatalf("db ping: %v", err)
		}
		log.Println("connected to postgres")

		pg := store.New(pool)
		if applied, err := pg.Migrate(ctx, cfg.MigrationsPath); err != nil {
			log.Printf("migration warning: %v", err)
		} else if applied {
			log.Println("migration applied")
		}
		st = pg
	}

	inbox := notify.NewInbox(st)
	emitters := notify.Multi{inbox, notify.Log{}}
	if cfg.RabbitURL != "" {
		pub, err := mq.NewPublisher(cfg.RabbitURL, cfg.NotifyExchange)
		if err != nil {
			log.Printf("rabbitmq disabled: %v", err)
		} else {
			defer pub.Close()
			emitters = append(emitters, notify.NewPublisher(pub))
			log.Printf("publishing notifications to exchange %s", cfg.NotifyExchange)
		}
	}

	issuer := auth.NewIssuer(cfg.JWTSecret, auth.Options{AccessTTL: cfg.AccessTTL, RefreshTTL: cfg.RefreshTTL})
	times := settings.New(st)
	bookings := booking.New(st, emitters, times)
	h := handler.New(handler.Deps{
		Users:    st,
		Tokens:   st,
		Bookings: bookings,
		Credits:  credits.New(st, bookings.Ledger()),
		Inbox:    inbox,
		Settings: times,
		Issuer:   issuer,
	})

	rl := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	go rl.Run(ctx)
	go sweepTokens(ctx, st, time.Hour)
	srv := grpc.NewServer(
		grpc.ForceServerCodec(bookingv1.Codec{}),
		grpc.ChainUnaryInterceptor(
			middleware.RateLimit(rl),
			middleware.Auth(issuer),
		),
	)
	bookingv1.RegisterBookingServiceServer(srv, h)

	lis, err := net.Listen("tcp", ":"+cfg.GRPCPort)
	if err != nil {
		log.Fatalf("listen: %v", err)
	}
	go func() {
		log.Printf("grpc on :%s", cfg.GRPCPort)
		if err := srv.Serve(lis); err != nil {
			log.Printf("grpc: %v", err)
		}
	}()

	// grpc-web bridge -> forwards browser requests to grpc on localhost
	bridge, err := grpcweb.New("localhost:" + cfg.GRPCPort)
	if err != nil {
		log.Fatalf("bridge: %v", err)
	}
	defer bridge.Close()

	httpSrv := &http.Server{
		Addr:              ":" + cfg.WebPort,
		Handler:           otelhttp.NewHandler(bridge.Handler(), "grpc-web"),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		log.Printf("grpc-web on :%s", cfg.WebPort)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("http: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(sctx); err != nil {
		log.Printf("http shutdown: %v", err)
	}
	srv.GracefulStop()
}

// sweepTokens drops expired refresh tokens every interval until ctx ends.
func sweepTokens(ctx context.Context, st backend, every time.Duration) {
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			n, err := st.PurgeRefreshTokens(ctx, now)
			if err != nil {
				log.Printf("purge refresh tokens: %v", err)
				continue
			}
			if n > 0 {
				log.Printf("purged %d expired refresh tokens", n)
			}
		}
	}
}
