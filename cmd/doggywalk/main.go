package main

import (
	"context"
	"log/slog"
	"os"

	"doggywalk/config"
	"doggywalk/internal/delivery"
	"doggywalk/internal/delivery/http"
	"doggywalk/internal/delivery/http/middleware"
	"doggywalk/internal/delivery/http/router/handler"
	"doggywalk/internal/infra/auth"
	"doggywalk/internal/infra/breeds"
	"doggywalk/internal/infra/cache"
	logs "doggywalk/internal/infra/log"
	"doggywalk/internal/infra/persistence/postgres"
	"doggywalk/internal/infra/qrcode"
	"doggywalk/internal/usecase/impl"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		postgres.New,
		cache.NewRedisClient,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			postgres.NewPrincipalRepository,
			postgres.NewAddressRepository,
			postgres.NewDogRepository,
			postgres.NewMessageRepository,
			postgres.NewConnectionRepository,
			postgres.NewAppointmentRepository,
			postgres.NewReviewRepository,
			postgres.NewTransactionManager,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewBcryptHasher,
			auth.NewJWTService,
			auth.NewTokenRevoker,
			breeds.New,
			qrcode.NewQRCodeService,
		),
	)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewIdentityService,
			impl.NewRelationshipService,
			impl.NewDogService,
			impl.NewBookingService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewAuthMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewAuthHandler,
			handler.NewPrincipalHandler,
			handler.NewDogHandler,
			handler.NewMessageHandler,
			handler.NewAppointmentHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				http.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}
