package checkout

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"kantin-backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrProductNotFound = errors.New("produk tidak ditemukan")
	ErrInvalidRequest  = errors.New("data request tidak valid")
)

// InsufficientStockError membawa stok yang tersisa supaya pesan error bisa
// menyebutkan jumlah yang masih tersedia.
type InsufficientStockError struct {
	Tersedia int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("Stok tidak cukup. Tersedia: %d", e.Tersedia)
}

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Checkout menjalankan satu penjualan: kurangi stok, ambil nomor urut, dan
// tulis baris ledger, semuanya dalam satu transaksi database. Pengurangan
// stok memakai update bersyarat (stok >= jumlah), jadi dua checkout yang
// bersamaan tidak bisa menjual melebihi stok.
func (s *Service) Checkout(ctx context.Context, barcodeID string, jumlah int) (*models.Transaction, error) {
	barcodeID = strings.ToUpper(strings.TrimSpace(barcodeID))
	if barcodeID == "" || jumlah <= 0 {
		return nil, ErrInvalidRequest
	}

	var trx models.Transaction
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var p models.Product
		if err := tx.Where("barcode_id = ?", barcodeID).First(&p).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProductNotFound
			}
			return err
		}

		res := tx.Model(&models.Product{}).
			Where("id = ? AND stok >= ?", p.ID, jumlah).
			UpdateColumn("stok", gorm.Expr("stok - ?", jumlah))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// Stok bisa saja berubah sejak dibaca; ambil nilai terkini
			// untuk pesan error.
			var current models.Product
			if err := tx.First(&current, p.ID).Error; err != nil {
				return err
			}
			return &InsufficientStockError{Tersedia: current.Stok}
		}

		code, err := nextTransaksiID(tx)
		if err != nil {
			return err
		}

		trx = models.Transaction{
			TransaksiID: code,
			ProductID:   p.ID,
			BarcodeID:   p.BarcodeID,
			NamaProduk:  p.NamaProduk,
			Jumlah:      jumlah,
			HargaSatuan: p.HargaJual,
			TotalHarga:  jumlah * p.HargaJual,
			Keuntungan:  jumlah * (p.HargaJual - p.HargaModal),
		}
		return tx.Create(&trx).Error
	})
	if err != nil {
		return nil, err
	}
	return &trx, nil
}

// nextTransaksiID menaikkan counter di dalam transaksi yang sedang berjalan.
// Kalau checkout gagal, kenaikan ikut di-rollback sehingga nomor tetap urut.
func nextTransaksiID(tx *gorm.DB) (string, error) {
	res := tx.Model(&models.TransactionCounter{}).
		Where("name = ?", models.CounterTransaksi).
		UpdateColumn("value", gorm.Expr("value + 1"))
	if res.Error != nil {
		return "", res.Error
	}
	if res.RowsAffected == 0 {
		// Baris counter belum ada (database yang dibuat sebelum migrasi
		// counter); mulai dari satu.
		counter := models.TransactionCounter{Name: models.CounterTransaksi, Value: 1}
		if err := tx.Create(&counter).Error; err != nil {
			return "", err
		}
		return fmt.Sprintf("TRX%05d", counter.Value), nil
	}

	var counter models.TransactionCounter
	if err := tx.Where("name = ?", models.CounterTransaksi).First(&counter).Error; err != nil {
		return "", err
	}
	return fmt.Sprintf("TRX%05d", counter.Value), nil
}

type LineItem struct {
	BarcodeID string `json:"barcode_id"`
	Jumlah    int    `json:"jumlah"`
}

type LineResult struct {
	BarcodeID   string              `json:"barcode_id"`
	Jumlah      int                 `json:"jumlah"`
	Success     bool                `json:"success"`
	Error       string              `json:"error,omitempty"`
	Transaction *models.Transaction `json:"transaction,omitempty"`
}

// CheckoutBatch memproses item keranjang satu per satu. Setiap item atomik
// sendiri; item yang sudah berhasil tidak di-rollback kalau item berikutnya
// gagal.
func (s *Service) CheckoutBatch(ctx context.Context, items []LineItem) []LineResult {
	results := make([]LineResult, 0, len(items))
	for _, item := range items {
		r := LineResult{BarcodeID: item.BarcodeID, Jumlah: item.Jumlah}
		trx, err := s.Checkout(ctx, item.BarcodeID, item.Jumlah)
		if err != nil {
			r.Error = err.Error()
		} else {
			r.Success = true
			r.Transaction = trx
		}
		results = append(results, r)
	}
	return results
}
