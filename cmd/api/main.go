package main

import (
	"fmt"
	"os"
	"time"

	"app/internal/config"
	"app/internal/domain/model"
	"app/internal/handler"
	"app/internal/infra/db"
	infraRepo "app/internal/infra/repository"
	"app/internal/logging"
	"app/internal/notification"
	"app/internal/server"
	"app/internal/usecase"
	auth "app/internal/usecase/auth_usecase"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

type uuidGenerator struct{}

func (g *uuidGenerator) NewID() string {
	return uuid.NewString()
}

type realClock struct{}

func (c *realClock) Now() time.Time {
	return time.Now()
}

func main() {
	//.envは無くてもよい（本番は環境変数で渡す）
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	log := logging.New("api", cfg.LogFile)

	//DB接続
	gormDB, err := db.Connect(cfg)
	if err != nil {
		log.Error("db connect failed", "error", err)
		os.Exit(1)
	}
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Address{},
		&model.Category{},
		&model.Product{},
		&model.Coupon{},
		&model.Cart{},
		&model.CartItem{},
		&model.Order{},
		&model.OrderItem{},
	); err != nil {
		log.Error("migrate failed", "error", err)
		os.Exit(1)
	}

	//Repository（GORM実装）生成
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	addressRepo := infraRepo.NewAddressGormRepository(gormDB)
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	categoryRepo := infraRepo.NewCategoryGormRepository(gormDB)
	couponRepo := infraRepo.NewCouponGormRepository(gormDB)
	cartRepo := infraRepo.NewCartGormRepository(gormDB)
	cartItemRepo := infraRepo.NewCartItemGormRepository(gormDB)
	txManager := infraRepo.NewTxManagerGorm(gormDB)

	//usecaseに渡す部品
	idGen := &uuidGenerator{}
	clock := &realClock{}

	//bcrypt（会員登録：Hash / ログイン：Verify）
	hasher := auth.NewBcryptPasswordHasher(12)
	verifier := auth.NewBcryptPasswordVerifier()

	issuer := auth.NewJWTIssuer(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL, cfg.ResetTokenTTL)

	//SMTP未設定ならログに落とすだけ
	var sender notification.Sender
	if cfg.SMTPHost != "" {
		smtp, err := notification.NewSMTPSender(notification.SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUsername,
			Password: cfg.SMTPPassword,
			From:     cfg.EmailFrom,
		})
		if err != nil {
			log.Error("smtp setup failed", "error", err)
			os.Exit(1)
		}
		sender = smtp
	} else {
		sender = notification.NewLogSender(log)
	}

	//Usecase生成
	registerUC := auth.NewRegisterUserUsecase(userRepo, hasher, issuer, sender, idGen, clock, log)
	loginUC := auth.NewLoginUsecase(userRepo, verifier, issuer, clock)
	resetUC := auth.NewPasswordResetUsecase(userRepo, hasher, issuer, sender, clock, log)
	productUC := usecase.NewProductUsecase(productRepo, categoryRepo)
	couponUC := usecase.NewCouponUsecase(couponRepo)
	cartUC := usecase.NewCartUsecase(cartRepo, cartItemRepo, productRepo, txManager, idGen)
	orderUC := usecase.NewOrderUsecase(txManager, idGen, clock)
	addressUC := usecase.NewAddressUsecase(addressRepo, idGen)

	//Handler生成
	handlers := server.Handlers{
		Auth:    handler.NewAuthHandler(registerUC, loginUC, resetUC),
		Product: handler.NewProductHandler(productUC),
		Cart:    handler.NewCartHandler(cartUC),
		Order:   handler.NewOrderHandler(orderUC),
		Coupon:  handler.NewCouponHandler(couponUC),
		Address: handler.NewAddressHandler(addressUC),
	}

	//Server起動
	e := server.New(log)
	server.RegisterRoutes(e, handlers, issuer)

	addr := ":" + cfg.Port
	log.Info("server starting", "addr", addr, "env", cfg.GoEnv)
	if err := e.Start(addr); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
