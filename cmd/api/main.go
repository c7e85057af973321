package main

import (
	"foh/internal/config"
	"foh/internal/domain/model"
	"foh/internal/handler"
	"foh/internal/infra/db"
	infraRepo "foh/internal/infra/repository"
	"foh/internal/logger"
	"foh/internal/seed"
	"foh/internal/server"
	"foh/internal/usecase"
	"foh/internal/ws"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// .envはローカル用。無くても環境変数があれば動く
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, err := logger.New(cfg.LogLevel, cfg.GoEnv)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	//DB接続
	gormDB, err := db.Connect()
	if err != nil {
		log.Fatal("db connect", zap.Error(err))
	}
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.RefreshToken{},
		&model.Category{},
		&model.Product{},
		&model.Table{},
		&model.Order{},
		&model.OrderItem{},
	); err != nil {
		log.Fatal("migrate", zap.Error(err))
	}
	if err := seed.Run(gormDB, log); err != nil {
		log.Fatal("seed", zap.Error(err))
	}

	// リポジトリ
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	tokenRepo := infraRepo.NewRefreshTokenRepository(gormDB)
	categoryRepo := infraRepo.NewCategoryGormRepository(gormDB)
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	tableRepo := infraRepo.NewTableGormRepository(gormDB)
	orderRepo := infraRepo.NewOrderGormRepository(gormDB)
	txManager := infraRepo.NewTxManagerGorm(gormDB)

	// WebSocketハブ
	hub := ws.NewHub(log)
	go hub.Run()
	events := ws.NewPublisher(hub)

	// ユースケース
	authUC := usecase.NewAuthUsecase(userRepo, tokenRepo, cfg)
	catalogUC := usecase.NewCatalogUsecase(categoryRepo, productRepo)
	tableUC := usecase.NewTableUsecase(tableRepo)
	editorUC := usecase.NewOrderEditorUsecase(txManager, events)
	kitchenUC := usecase.NewKitchenUsecase(txManager, events, cfg.KitchenShowReady)
	billingUC := usecase.NewBillingUsecase(txManager, events)
	reportUC := usecase.NewReportUsecase(orderRepo, tableRepo)

	handlers := server.Handlers{
		Auth:    handler.NewAuthHandler(authUC, cfg.GoEnv == "prod"),
		Catalog: handler.NewCatalogHandler(catalogUC),
		Table:   handler.NewTableHandler(tableUC),
		Waiter:  handler.NewWaiterOrderHandler(editorUC),
		Kitchen: handler.NewKitchenHandler(kitchenUC),
		Billing: handler.NewBillingHandler(billingUC),
		Report:  handler.NewReportHandler(reportUC),
		Hub:     hub,
	}

	e := server.New(cfg, log, userRepo, handlers)
	log.Info("listening", zap.String("port", cfg.Port))
	if err := server.Start(e, ":"+cfg.Port); err != nil {
		log.Fatal("server", zap.Error(err))
	}
}
