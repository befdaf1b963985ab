package database

import (
	"log"

	"kantin-backend/internal/config"
	"kantin-backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init(cfg *config.Config) {
	var err error

	DB, err = gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("Tidak bisa terhubung ke database: %v", err)
	}

	if err := Migrate(DB); err != nil {
		log.Fatalf("Migrasi database gagal: %v", err)
	}

	log.Println("Koneksi database berhasil. Migrasi selesai.")
}

// Migrate menjalankan AutoMigrate dan menyiapkan baris counter transaksi.
// Dipanggil dari Init dan dari test yang memakai SQLite in-memory.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.Transaction{},
		&models.TransactionCounter{},
		&models.PrintSetting{},
		&models.AuditLog{},
	); err != nil {
		return err
	}

	// Counter transaksi harus ada sebelum checkout pertama supaya increment
	// di dalam transaksi checkout tidak perlu membuat baris baru.
	counter := models.TransactionCounter{Name: models.CounterTransaksi}
	return db.Where("name = ?", models.CounterTransaksi).FirstOrCreate(&counter).Error
}
