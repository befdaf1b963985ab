package config

import (
	"log"
	"os"
)

type Config struct {
	HTTPPort    string
	DatabaseDSN string
	JWTSecret   string
	CORSOrigins string
	RedisAddr   string // kosong = keranjang disimpan di memori proses
}

func Load() *Config {
	cfg := &Config{
		HTTPPort:    getEnv("HTTP_PORT", "8080"),
		DatabaseDSN: getEnv("DATABASE_DSN", "host=localhost user=postgres password=postgres dbname=kantin port=5432 sslmode=disable"),
		JWTSecret:   getEnv("JWT_SECRET", ""),
		CORSOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000"),
		RedisAddr:   getEnv("REDIS_ADDR", ""),
	}

	// Pengecekan keamanan untuk production
	if cfg.JWTSecret == "" {
		log.Fatal("[FATAL] Environment variable JWT_SECRET belum di-set! Wajib untuk production.")
	}
	if len(cfg.JWTSecret) < 32 {
		log.Fatal("[FATAL] JWT_SECRET minimal 32 karakter! Berisiko untuk keamanan.")
	}
	if cfg.DatabaseDSN == "host=localhost user=postgres password=postgres dbname=kantin port=5432 sslmode=disable" {
		log.Println("[WARN] DATABASE_DSN masih memakai nilai default, set koneksi Postgres sendiri untuk production.")
	}
	if cfg.CORSOrigins == "http://localhost:3000" {
		log.Println("[WARN] CORS_ALLOWED_ORIGINS masih memakai nilai default, set domain sendiri untuk production.")
	}

	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
