package main

import (
	"context"
	"log/slog"
	"os"

	"drivelink/config"
	"drivelink/internal/delivery"
	"drivelink/internal/delivery/http"
	"drivelink/internal/delivery/http/middleware"
	"drivelink/internal/delivery/http/router/handler"
	"drivelink/internal/infra/auth"
	logs "drivelink/internal/infra/log"
	"drivelink/internal/infra/persistence/postgres"
	"drivelink/internal/infra/pubsub"
	"drivelink/internal/infra/snapshot"
	"drivelink/internal/store"
	"drivelink/internal/usecase/impl"

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
		injectStore(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			activateStores,
			startServer,
		),
	).Run()
}

// activateStores forces construction of the entity stores so their
// hydrate/close lifecycle hooks are registered.
func activateStores(
	_ *store.AuthStore,
	_ *store.CarStore,
	_ *store.RevenueStore,
	_ *store.ExpenseStore,
	_ *store.UserStore,
) {
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		postgres.New,
		snapshot.New,
		pubsub.NewEventPublisher,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			postgres.NewProfileRepository,
			postgres.NewAuthRepository,
			postgres.NewRoleRepository,
			postgres.NewMemberRepository,
			postgres.NewRefreshTokenRepository,
			postgres.NewCarRepository,
			postgres.NewAssignmentRepository,
			postgres.NewRevenueRepository,
			postgres.NewExpenseRepository,
			postgres.NewTransactionManager,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewBcryptHasher,
			auth.NewJWTService,
		),
	)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewAuthService,
			impl.NewCarService,
			impl.NewRevenueService,
			impl.NewExpenseService,
			impl.NewUserService,
		),
	)
}

func injectStore() fx.Option {
	return fx.Options(
		fx.Provide(
			store.NewAuthStore,
			store.NewCarStore,
			store.NewRevenueStore,
			store.NewExpenseStore,
			store.NewUserStore,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewAuthMiddleware,
			middleware.NewErrorMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewAuthHandler,
			handler.NewCarHandler,
			handler.NewFinanceHandler,
			handler.NewUserHandler,
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
