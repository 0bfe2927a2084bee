package main

import (
	"log/slog"
	"os"
	"time"

	"github.com/RepuestoHoy/RepuestoHoy-sub000/internal/config"
	"github.com/RepuestoHoy/RepuestoHoy-sub000/internal/domain/model"
	"github.com/RepuestoHoy/RepuestoHoy-sub000/internal/handler"
	"github.com/RepuestoHoy/RepuestoHoy-sub000/internal/infra/db"
	"github.com/RepuestoHoy/RepuestoHoy-sub000/internal/infra/mail"
	"github.com/RepuestoHoy/RepuestoHoy-sub000/internal/infra/messaging"
	infraRepo "github.com/RepuestoHoy/RepuestoHoy-sub000/internal/infra/repository"
	"github.com/RepuestoHoy/RepuestoHoy-sub000/internal/infra/storage"
	"github.com/RepuestoHoy/RepuestoHoy-sub000/internal/infra/whatsapp"
	"github.com/RepuestoHoy/RepuestoHoy-sub000/internal/middleware"
	"github.com/RepuestoHoy/RepuestoHoy-sub000/internal/notify"
	"github.com/RepuestoHoy/RepuestoHoy-sub000/internal/server"
	"github.com/RepuestoHoy/RepuestoHoy-sub000/internal/usecase"

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

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("config load failed", slog.Any("error", err))
		os.Exit(1)
	}

	//DB接続
	gormDB, err := db.Connect()
	if err != nil {
		logger.Error("db connect failed", slog.Any("error", err))
		os.Exit(1)
	}
	if err := gormDB.AutoMigrate(
		&model.Order{},
		&model.OrderItem{},
		&model.EmailLog{},
		&model.Product{},
	); err != nil {
		logger.Error("migrate failed", slog.Any("error", err))
		os.Exit(1)
	}

	//Repository（GORM実装）生成
	orderRepo := infraRepo.NewOrderGormRepository(gormDB)
	emailLogRepo := infraRepo.NewEmailLogGormRepository(gormDB)
	productRepo := infraRepo.NewProductGormRepository(gormDB)

	//外部コラボレーター。未構成のものはnilにしてチャネルを無効化する
	var mailer notify.Mailer = mail.DisabledMailer{}
	if cfg.MailConfigured() {
		mailer = mail.NewResendMailer(cfg.ResendAPIKey, cfg.MailFrom, cfg.MailFromName)
	} else {
		logger.Warn("RESEND_API_KEY not set, email channel disabled")
	}

	var wa notify.WhatsAppSender
	if cfg.WhatsAppConfigured() {
		wa = whatsapp.NewClient(cfg.WhatsAppAPIURL, cfg.WhatsAppAPIKey)
	} else {
		logger.Warn("whatsapp relay not configured, channel disabled")
	}

	var publisher notify.Publisher
	if len(cfg.KafkaBrokers) > 0 {
		publisher = messaging.NewKafkaPublisher(cfg.KafkaBrokers)
	}

	var proofStorage usecase.ProofStorage
	if cfg.StorageConfigured() {
		ps, err := storage.NewMinioProofStorage(storage.MinioConfig{
			Endpoint:  cfg.StorageEndpoint,
			AccessKey: cfg.StorageAccessKey,
			SecretKey: cfg.StorageSecretKey,
			Bucket:    cfg.StorageBucket,
			PublicURL: cfg.StoragePublicURL,
			UseSSL:    cfg.StorageUseSSL,
		})
		if err != nil {
			logger.Error("storage init failed", slog.Any("error", err))
			os.Exit(1)
		}
		proofStorage = ps
	} else {
		logger.Warn("proof storage not configured, uploads will return 503")
	}

	//usecaseに渡す部品
	idGen := &uuidGenerator{}
	clock := &realClock{}

	notifier := notify.NewService(mailer, wa, publisher, emailLogRepo,
		cfg.AdminNotifyEmail, cfg.OrdersTopic, logger)

	//Usecase生成
	orderUC := usecase.NewOrderUsecase(orderRepo, notifier, clock, cfg.PaymentProofOptional)
	uploadUC := usecase.NewUploadUsecase(proofStorage, orderRepo, idGen, clock, cfg.UploadMaxBytes)
	productUC := usecase.NewProductUsecase(productRepo)
	adminOrderUC := usecase.NewAdminOrderUsecase(orderRepo, emailLogRepo)
	adminProductUC := usecase.NewAdminProductUsecase(productRepo)
	authUC := usecase.NewAuthUsecase(cfg.AdminPasswordHash, cfg.JWTSecret, clock)

	//Handler生成
	guard := middleware.AdminAuth(cfg.JWTSecret)

	orderH := handler.NewOrderHandler(orderUC)
	uploadH := handler.NewUploadHandler(uploadUC)
	productH := handler.NewProductHandler(productUC)
	adminOrderH := handler.NewAdminOrderHandler(adminOrderUC, guard)
	adminProductH := handler.NewAdminProductHandler(adminProductUC, guard)
	authH := handler.NewAuthHandler(authUC)

	//Server起動
	addr := cfg.Port
	if addr[0] != ':' {
		addr = ":" + addr
	}

	logger.Info("starting api", slog.String("addr", addr))
	if err := server.Start(addr, orderH, uploadH, productH, adminOrderH, adminProductH, authH); err != nil {
		logger.Error("server stopped", slog.Any("error", err))
		os.Exit(1)
	}
}
