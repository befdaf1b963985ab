package cart

import (
	"fmt"
	"time"
)

// Item adalah satu baris keranjang dengan snapshot produk saat ditambahkan.
// Stok divalidasi ulang oleh checkout, snapshot di sini hanya untuk tampilan.
type Item struct {
	BarcodeID  string `json:"barcode_id"`
	NamaProduk string `json:"nama_produk"`
	HargaJual  int    `json:"harga_jual"`
	Jumlah     int    `json:"jumlah"`
}

type Cart struct {
	UserID    uint      `json:"user_id"`
	Items     []Item    `json:"items"`
	UpdatedAt time.Time `json:"updated_at"`
}

func New(userID uint) *Cart {
	return &Cart{UserID: userID, Items: []Item{}}
}

func (c *Cart) Total() int {
	total := 0
	for _, it := range c.Items {
		total += it.Jumlah * it.HargaJual
	}
	return total
}

// Jumlah barang untuk satu barcode, 0 kalau tidak ada di keranjang.
func (c *Cart) JumlahFor(barcodeID string) int {
	for _, it := range c.Items {
		if it.BarcodeID == barcodeID {
			return it.Jumlah
		}
	}
	return 0
}

// Add menggabungkan jumlah kalau barcode sudah ada di keranjang.
func (c *Cart) Add(item Item) {
	for i := range c.Items {
		if c.Items[i].BarcodeID == item.BarcodeID {
			c.Items[i].Jumlah += item.Jumlah
			// Snapshot harga/nama diperbarui ke yang terbaru
			c.Items[i].NamaProduk = item.NamaProduk
			c.Items[i].HargaJual = item.HargaJual
			return
		}
	}
	c.Items = append(c.Items, item)
}

// SetJumlah mengganti jumlah satu baris; 0 menghapus baris tersebut.
// Mengembalikan false kalau barcode tidak ada di keranjang.
func (c *Cart) SetJumlah(barcodeID string, jumlah int) bool {
	for i := range c.Items {
		if c.Items[i].BarcodeID != barcodeID {
			continue
		}
		if jumlah <= 0 {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
		} else {
			c.Items[i].Jumlah = jumlah
		}
		return true
	}
	return false
}

// Remove menghapus baris berdasarkan barcode.
func (c *Cart) Remove(barcodeID string) {
	c.SetJumlah(barcodeID, 0)
}

// StockError dipakai saat penambahan keranjang melebihi stok yang tercatat.
type StockError struct {
	Tersedia int
}

func (e *StockError) Error() string {
	return fmt.Sprintf("Stok tidak cukup. Tersedia: %d", e.Tersedia)
}
