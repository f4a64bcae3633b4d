// @title                       Entregas EPP API
// @version                     1.0
// @description                 Registro, edición y eliminación de entregas de EPP con control transaccional de stock.
// @BasePath                    /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
// @description                 Bearer <token JWT>
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"

	_ "github.com/jhoicas/entregas-epp/docs"
	"github.com/jhoicas/entregas-epp/internal/application/delivery"
	"github.com/jhoicas/entregas-epp/internal/application/inventory"
	"github.com/jhoicas/entregas-epp/internal/domain/repository"
	"github.com/jhoicas/entregas-epp/internal/infrastructure/catalog"
	"github.com/jhoicas/entregas-epp/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/entregas-epp/internal/infrastructure/pdf"
	"github.com/jhoicas/entregas-epp/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/entregas-epp/internal/interfaces/http"
	"github.com/jhoicas/entregas-epp/pkg/config"
	"github.com/jhoicas/entregas-epp/pkg/logger"
)

// stores puertos de persistencia según APP_STORE.
type stores struct {
	txRunner     inventory.TxRunner
	stockRepo    repository.EquipmentStockRepository
	deliveryRepo repository.DeliveryRepository
	movementRepo repository.StockMovementRepository
	close        func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.App.Store).
		Msg("iniciando aplicación")

	ctx := context.Background()
	st, err := openStores(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a almacenamiento")
	}
	defer st.close()

	txRunner := inventory.NewRetryingTxRunner(st.txRunner, inventory.RetryPolicy{
		MaxAttempts: cfg.Tx.MaxAttempts,
		BaseDelay:   cfg.Tx.RetryBaseDelay,
		MaxDelay:    cfg.Tx.RetryMaxDelay,
	}, log.Component("tx"))

	deliveryUC := delivery.NewUseCase(txRunner, inventory.NewStockApplier(), st.deliveryRepo, log.Component("delivery"))
	deliveryPDF := delivery.NewPDFUseCase(st.deliveryRepo, st.stockRepo, infrapdf.NewDeliveryPDFGenerator(cfg.App.Name))
	stockQuery := inventory.NewStockQueryUseCase(st.stockRepo, st.movementRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Component("http")))
	if cfg.HTTP.RateLimitMax > 0 {
		app.Use(limiter.New(limiter.Config{
			Max:        cfg.HTTP.RateLimitMax,
			Expiration: cfg.HTTP.RateLimitWindow,
			Next:       func(c *fiber.Ctx) bool { return c.Path() == "/health" },
		}))
	}

	// Swagger UI: http://localhost:<port>/docs
	if cfg.HTTP.Swagger {
		if _, err := os.Stat("./docs/swagger.json"); err == nil {
			app.Use(swagger.New(swagger.Config{
				BasePath: "/",
				FilePath: "./docs/swagger.json",
				Path:     "docs",
				Title:    "Entregas EPP API",
			}))
		} else {
			log.Warn().Err(err).Msg("swagger habilitado pero docs/swagger.json no existe")
		}
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "store": cfg.App.Store})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		DeliveryUC:  deliveryUC,
		DeliveryPDF: deliveryPDF,
		StockQuery:  stockQuery,
		JWTSecret:   cfg.JWT.Secret,
		Log:         log.Component("http"),
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

// openStores abre PostgreSQL (y asegura el esquema) o, con APP_STORE=memory, un store en memoria
// cargado opcionalmente desde APP_SEED_FILE.
func openStores(ctx context.Context, cfg *config.Config) (*stores, error) {
	if cfg.App.UsesMemoryStore() {
		s := memory.NewStore()
		if cfg.App.SeedFile != "" {
			f, err := os.Open(cfg.App.SeedFile)
			if err != nil {
				return nil, fmt.Errorf("abrir catálogo: %w", err)
			}
			defer f.Close()
			catalogStocks, err := catalog.Load(f, catalog.EncodingAuto)
			if err != nil {
				return nil, err
			}
			s.PutEquipment(catalogStocks...)
		}
		return &stores{
			txRunner:     s,
			stockRepo:    s.EquipmentStocks(),
			deliveryRepo: s.Deliveries(),
			movementRepo: s.Movements(),
			close:        func() {},
		}, nil
	}

	connectCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	pool, err := postgres.NewPool(connectCtx, cfg.DB)
	if err != nil {
		return nil, err
	}
	if err := postgres.EnsureSchema(connectCtx, pool); err != nil {
		pool.Close()
		return nil, err
	}
	return &stores{
		txRunner:     postgres.NewTxRunner(pool),
		stockRepo:    postgres.NewEquipmentStockRepository(pool),
		deliveryRepo: postgres.NewDeliveryRepository(pool),
		movementRepo: postgres.NewStockMovementRepository(pool),
		close:        pool.Close,
	}, nil
}
