package models

import "time"

// Transaction adalah satu baris penjualan di ledger. Setelah dibuat tidak
// pernah diubah; nama dan harga produk disalin saat transaksi terjadi.
type Transaction struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	TransaksiID string    `gorm:"size:20;uniqueIndex;not null" json:"transaksi_id"` // TRX + counter 5 digit
	ProductID   uint      `gorm:"index;not null" json:"product_id"`
	BarcodeID   string    `gorm:"size:50;index;not null" json:"barcode_id"`
	NamaProduk  string    `gorm:"size:100;not null" json:"nama_produk"`
	Jumlah      int       `gorm:"not null" json:"jumlah"`
	HargaSatuan int       `gorm:"not null" json:"harga_satuan"`
	TotalHarga  int       `gorm:"not null" json:"total_harga"`
	Keuntungan  int       `gorm:"not null" json:"keuntungan"`
	CreatedAt   time.Time `json:"created_at"`
}

const CounterTransaksi = "transaksi"

// TransactionCounter menyimpan nomor urut transaksi. Incremented di dalam
// transaksi database yang sama dengan insert ledger, jadi tidak ada race
// seperti pola "baca baris terakhir lalu tambah satu".
type TransactionCounter struct {
	ID    uint   `gorm:"primaryKey"`
	Name  string `gorm:"size:30;uniqueIndex;not null"`
	Value int64  `gorm:"not null;default:0"`
}
