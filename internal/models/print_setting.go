package models

import "time"

const (
	PaperWidth58 = "58mm"
	PaperWidth80 = "80mm"
)

// PrintSetting adalah pengaturan cetak struk, satu baris saja.
type PrintSetting struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	StoreName    string    `gorm:"size:100;not null" json:"store_name"`
	StoreAddress string    `gorm:"size:255" json:"store_address"`
	StorePhone   string    `gorm:"size:30" json:"store_phone"`
	StoreWebsite string    `gorm:"size:100" json:"store_website"`
	PaperWidth   string    `gorm:"size:10;not null" json:"paper_width"` // 58mm atau 80mm
	ShowLogo     bool      `gorm:"not null;default:true" json:"show_logo"`
	ShowKasir    bool      `gorm:"not null;default:true" json:"show_kasir"`
	AutoPrint    bool      `gorm:"not null;default:false" json:"auto_print"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// DefaultPrintSetting mengikuti nilai awal aplikasi kasir.
func DefaultPrintSetting() PrintSetting {
	return PrintSetting{
		StoreName:    "KANTIN SEKOLAH",
		StoreAddress: "Jl. Pendidikan No. 123",
		StorePhone:   "0812-3456-7890",
		StoreWebsite: "www.kantinsekolah.com",
		PaperWidth:   PaperWidth58,
		ShowLogo:     true,
		ShowKasir:    true,
		AutoPrint:    false,
	}
}
