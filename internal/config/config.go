package config

import "os"

// Config holds environment-driven configuration.
type Config struct {
	Addr          string
	DatabaseURL   string
	JWTSecret     string
	ZonesPath     string
	WhatsAppPhone string
	PaymentNumber string
	AdminEmail    string
	// bcrypt hash of the admin password
	AdminPasswordHash string
}

// Load reads configuration from environment variables.
func Load() Config {
	addr := os.Getenv("STOREFRONT_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	zones := os.Getenv("DELIVERY_ZONES_PATH")
	if zones == "" {
		zones = "config/zones.yaml"
	}

	phone := os.Getenv("WHATSAPP_PHONE")
	if phone == "" {
		phone = "+201559839407"
	}

	payment := os.Getenv("PAYMENT_NUMBER")
	if payment == "" {
		payment = "01007361231"
	}

	return Config{
		Addr:              addr,
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		JWTSecret:         os.Getenv("JWT_SECRET"),
		ZonesPath:         zones,
		WhatsAppPhone:     phone,
		PaymentNumber:     payment,
		AdminEmail:        os.Getenv("ADMIN_EMAIL"),
		AdminPasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),
	}
}
