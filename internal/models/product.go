package models

import "time"

// Kategori produk mengikuti pilihan tetap di form katalog.
const (
	KategoriMakanan   = "Makanan"
	KategoriMinuman   = "Minuman"
	KategoriSnack     = "Snack"
	KategoriAlatTulis = "Alat Tulis"
)

var AllKategori = []string{KategoriMakanan, KategoriMinuman, KategoriSnack, KategoriAlatTulis}

func ValidKategori(k string) bool {
	for _, v := range AllKategori {
		if v == k {
			return true
		}
	}
	return false
}

type Product struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	BarcodeID  string    `gorm:"size:50;uniqueIndex;not null" json:"barcode_id"` // selalu disimpan uppercase
	NamaProduk string    `gorm:"size:100;not null" json:"nama_produk"`
	Kategori   string    `gorm:"size:20;not null" json:"kategori"`
	Stok       int       `gorm:"not null;default:0" json:"stok"`
	HargaModal int       `gorm:"not null" json:"harga_modal"`
	HargaJual  int       `gorm:"not null" json:"harga_jual"` // invariant: harga_jual > harga_modal
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
