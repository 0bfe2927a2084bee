package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Configはアプリ全体の設定
type Config struct {
	Port string // サーバーポート（8080）

	JWTSecret         string // 管理者トークンの署名シークレット
	AdminPasswordHash string // 管理者パスワードのbcryptハッシュ

	// メール（Resend）。キーが空ならメールチャネルは無効。
	ResendAPIKey     string
	MailFrom         string // 送信元アドレス
	MailFromName     string // 送信元の表示名
	AdminNotifyEmail string // 社内通知の宛先（固定）

	// WhatsAppリレー。キーが空ならチャネル無効。
	WhatsAppAPIURL string
	WhatsAppAPIKey string

	// comprobante用のオブジェクトストレージ（S3互換）
	StorageEndpoint  string
	StorageAccessKey string
	StorageSecretKey string
	StorageBucket    string
	StoragePublicURL string // 公開URLのベース
	StorageUseSSL    bool

	// 注文イベント発行（任意）。空ならpublishしない。
	KafkaBrokers []string
	OrdersTopic  string

	//pago_movil / zelle でもcomprobante無しの注文を許す（デプロイ中のUI挙動）
	PaymentProofOptional bool

	UploadMaxBytes int64
}

const defaultUploadMaxBytes = 5 << 20 // 5MB

// Loadは環境変数
func Load() (Config, error) {
	cfg := Config{
		Port: os.Getenv("PORT"),

		JWTSecret:         os.Getenv("JWT_SECRET"),
		AdminPasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),

		ResendAPIKey:     os.Getenv("RESEND_API_KEY"),
		MailFrom:         os.Getenv("MAIL_FROM"),
		MailFromName:     getenv("MAIL_FROM_NAME", "RepuestoHoy"),
		AdminNotifyEmail: os.Getenv("ADMIN_NOTIFY_EMAIL"),

		WhatsAppAPIURL: os.Getenv("WHATSAPP_API_URL"),
		WhatsAppAPIKey: os.Getenv("WHATSAPP_API_KEY"),

		StorageEndpoint:  os.Getenv("STORAGE_ENDPOINT"),
		StorageAccessKey: os.Getenv("STORAGE_ACCESS_KEY"),
		StorageSecretKey: os.Getenv("STORAGE_SECRET_KEY"),
		StorageBucket:    getenv("STORAGE_BUCKET", "payment-proofs"),
		StoragePublicURL: os.Getenv("STORAGE_PUBLIC_URL"),
		StorageUseSSL:    os.Getenv("STORAGE_USE_SSL") != "false",

		OrdersTopic: getenv("ORDERS_TOPIC", "orders.events"),

		PaymentProofOptional: os.Getenv("PAYMENT_PROOF_OPTIONAL") == "true",

		UploadMaxBytes: defaultUploadMaxBytes,
	}

	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		for _, b := range strings.Split(v, ",") {
			if b = strings.TrimSpace(b); b != "" {
				cfg.KafkaBrokers = append(cfg.KafkaBrokers, b)
			}
		}
	}

	if v := os.Getenv("UPLOAD_MAX_BYTES"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n <= 0 {
			return Config{}, fmt.Errorf("UPLOAD_MAX_BYTES must be a positive number")
		}
		cfg.UploadMaxBytes = n
	}

	//必須チェック
	if cfg.Port == "" {
		return Config{}, fmt.Errorf("PORT is required")
	}
	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.AdminPasswordHash == "" {
		return Config{}, fmt.Errorf("ADMIN_PASSWORD_HASH is required")
	}
	if cfg.MailFrom == "" {
		return Config{}, fmt.Errorf("MAIL_FROM is required")
	}
	if cfg.AdminNotifyEmail == "" {
		return Config{}, fmt.Errorf("ADMIN_NOTIFY_EMAIL is required")
	}

	return cfg, nil
}

// メールチャネルが使えるか
func (c Config) MailConfigured() bool {
	return c.ResendAPIKey != ""
}

func (c Config) WhatsAppConfigured() bool {
	return c.WhatsAppAPIURL != "" && c.WhatsAppAPIKey != ""
}

func (c Config) StorageConfigured() bool {
	return c.StorageEndpoint != "" && c.StorageAccessKey != "" && c.StorageSecretKey != ""
}

func getenv(key string, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}
