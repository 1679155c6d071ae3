package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"storefront/internal/auth"
	"storefront/internal/cart"
	"storefront/internal/catalog"
	"storefront/internal/config"
	"storefront/internal/httpapi"
	"storefront/internal/user"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	if err := run(log); err != nil {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run(log *slog.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.RequestTimeout)
	defer cancel()

	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return err
	}
	if err := mongoClient.Ping(ctx, nil); err != nil {
		return err
	}
	defer func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		_ = mongoClient.Disconnect(shutdownCtx)
	}()
	db := mongoClient.Database(cfg.MongoDB)
	log.Info("connected to mongodb", "database", cfg.MongoDB)

	users := user.NewMongoRepository(db)
	carts := cart.NewMongoRepository(db)
	products := catalog.NewMongoRepository(db)
	for _, ensure := range []func(context.Context) error{
		users.EnsureIndexes, carts.EnsureIndexes, products.EnsureIndexes,
	} {
		if err := ensure(ctx); err != nil {
			return err
		}
	}

	issuer := auth.NewIssuer(cfg.JWTSecret, cfg.TokenTTL)
	router := httpapi.NewRouter(httpapi.Deps{
		Config:   cfg,
		Log:      log,
		Issuer:   issuer,
		Auth:     auth.NewService(users, issuer),
		Cart:     cart.NewService(carts),
		Catalog:  catalog.NewService(products, catalog.NewFakeStoreClient(cfg.FakeStoreURL), log),
		Wishlist: users,
	})

	log.Info("listening", "addr", cfg.Addr, "authTransport", cfg.AuthTransport)
	return router.Run(cfg.Addr)
}
