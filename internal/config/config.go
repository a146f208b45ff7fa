package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Payment holds the gateway credentials and endpoints. Resolved once at
// startup and handed to the payment component explicitly; nothing reads
// gateway settings from package globals.
type Payment struct {
	TmnCode    string
	HashSecret string
	GatewayURL string
	ReturnURL  string
}

type Config struct {
	Port      string
	DBDSN     string
	MediaDir  string
	LogFile   string
	JWTSecret string
	Payment   Payment
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func Load() Config {
	// .env is optional; deployments usually set the environment directly.
	_ = godotenv.Load()

	cfg := Config{
		Port:      getenv("PORT", "8080"),
		DBDSN:     getenv("DB_DSN", "modaville.db"),
		MediaDir:  getenv("MEDIA_DIR", "./web/media"),
		LogFile:   getenv("LOG_FILE", "./modaville.log"),
		JWTSecret: getenv("JWT_SECRET", "dev-only-secret-change-me"),
		Payment: Payment{
			TmnCode:    getenv("VNP_TMN_CODE", ""),
			HashSecret: getenv("VNP_HASH_SECRET", ""),
			GatewayURL: getenv("VNP_GATEWAY_URL", "https://sandbox.vnpayment.vn/paymentv2/vpcpay.html"),
			ReturnURL:  getenv("VNP_RETURN_URL", "http://localhost:8080/vnpay_return"),
		},
	}
	log.Printf("[config] PORT=%s DB_DSN=%s MEDIA_DIR=%s LOG_FILE=%s", cfg.Port, cfg.DBDSN, cfg.MediaDir, cfg.LogFile)
	return cfg
}
