package report

import (
	"fmt"
	"sort"
	"time"

	"kantin-backend/internal/models"

	"github.com/gocarina/gocsv"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type DailySales struct {
	Date       string `json:"date"`
	Transaksi  int    `json:"transaksi"`
	Item       int    `json:"item"`
	Pendapatan int    `json:"pendapatan"`
	Keuntungan int    `json:"keuntungan"`
}

type SummaryResponse struct {
	From            string       `json:"from"`
	To              string       `json:"to"`
	TotalTransaksi  int          `json:"total_transaksi"`
	TotalItem       int          `json:"total_item"`
	TotalPendapatan int          `json:"total_pendapatan"`
	TotalKeuntungan int          `json:"total_keuntungan"`
	Harian          []DailySales `json:"harian"`
}

// parseRange membaca ?from=YYYY-MM-DD&to=YYYY-MM-DD.
func parseRange(c *fiber.Ctx) (time.Time, time.Time, error) {
	fromStr := c.Query("from")
	toStr := c.Query("to")
	if fromStr == "" || toStr == "" {
		return time.Time{}, time.Time{}, fiber.NewError(fiber.StatusBadRequest, "Tanggal from dan to wajib diisi (YYYY-MM-DD)")
	}

	from, err := time.Parse("2006-01-02", fromStr)
	if err != nil {
		return time.Time{}, time.Time{}, fiber.NewError(fiber.StatusBadRequest, "Tanggal from tidak valid")
	}
	to, err := time.Parse("2006-01-02", toStr)
	if err != nil {
		return time.Time{}, time.Time{}, fiber.NewError(fiber.StatusBadRequest, "Tanggal to tidak valid")
	}
	if to.Before(from) {
		return time.Time{}, time.Time{}, fiber.NewError(fiber.StatusBadRequest, "Tanggal to sebelum from")
	}
	return from, to, nil
}

func transactionsBetween(db *gorm.DB, from, to time.Time) ([]models.Transaction, error) {
	var trxs []models.Transaction
	err := db.
		Where("created_at >= ? AND created_at < ?", from, to.AddDate(0, 0, 1)).
		Order("created_at asc").
		Find(&trxs).Error
	return trxs, err
}

// GET /api/reports/summary?from=2026-01-01&to=2026-01-31
func SummaryHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		from, to, err := parseRange(c)
		if err != nil {
			return err
		}

		trxs, err := transactionsBetween(db, from, to)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Transaksi tidak bisa diambil")
		}

		res := SummaryResponse{
			From: from.Format("2006-01-02"),
			To:   to.Format("2006-01-02"),
		}

		dailyMap := make(map[string]*DailySales)
		for _, t := range trxs {
			res.TotalTransaksi++
			res.TotalItem += t.Jumlah
			res.TotalPendapatan += t.TotalHarga
			res.TotalKeuntungan += t.Keuntungan

			dateStr := t.CreatedAt.Format("2006-01-02")
			d, ok := dailyMap[dateStr]
			if !ok {
				d = &DailySales{Date: dateStr}
				dailyMap[dateStr] = d
			}
			d.Transaksi++
			d.Item += t.Jumlah
			d.Pendapatan += t.TotalHarga
			d.Keuntungan += t.Keuntungan
		}

		res.Harian = make([]DailySales, 0, len(dailyMap))
		for _, d := range dailyMap {
			res.Harian = append(res.Harian, *d)
		}
		sort.Slice(res.Harian, func(i, j int) bool { return res.Harian[i].Date < res.Harian[j].Date })

		return c.JSON(res)
	}
}

// Kolom mengikuti ekspor CSV halaman laporan aplikasi kasir.
type exportRow struct {
	TransaksiID string `csv:"ID Transaksi"`
	NamaProduk  string `csv:"Produk"`
	BarcodeID   string `csv:"Barcode"`
	Jumlah      int    `csv:"Jumlah"`
	HargaSatuan int    `csv:"Harga Satuan"`
	TotalHarga  int    `csv:"Total"`
	Keuntungan  int    `csv:"Keuntungan"`
	Tanggal     string `csv:"Tanggal"`
}

// GET /api/reports/export?from=2026-01-01&to=2026-01-31
func ExportCSVHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		from, to, err := parseRange(c)
		if err != nil {
			return err
		}

		trxs, err := transactionsBetween(db, from, to)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Transaksi tidak bisa diambil")
		}

		rows := make([]exportRow, 0, len(trxs))
		for _, t := range trxs {
			rows = append(rows, exportRow{
				TransaksiID: t.TransaksiID,
				NamaProduk:  t.NamaProduk,
				BarcodeID:   t.BarcodeID,
				Jumlah:      t.Jumlah,
				HargaSatuan: t.HargaSatuan,
				TotalHarga:  t.TotalHarga,
				Keuntungan:  t.Keuntungan,
				Tanggal:     t.CreatedAt.Format("2006-01-02 15:04:05"),
			})
		}

		csvStr, err := gocsv.MarshalString(&rows)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "CSV tidak bisa dibuat")
		}

		filename := fmt.Sprintf("laporan-penjualan-%s-%s.csv", from.Format("2006-01-02"), to.Format("2006-01-02"))
		c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
		return c.SendString(csvStr)
	}
}

type DashboardStats struct {
	TotalProduk       int64 `json:"total_produk"`
	TransaksiHariIni  int64 `json:"transaksi_hari_ini"`
	PendapatanHariIni int   `json:"pendapatan_hari_ini"`
	KeuntunganHariIni int   `json:"keuntungan_hari_ini"`
	StokMenipis       int64 `json:"stok_menipis"` // stok < 10
}

// GET /api/dashboard/stats
func DashboardStatsHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var stats DashboardStats

		if err := db.Model(&models.Product{}).Count(&stats.TotalProduk).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Statistik tidak bisa diambil")
		}
		if err := db.Model(&models.Product{}).Where("stok < ?", 10).Count(&stats.StokMenipis).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Statistik tidak bisa diambil")
		}

		now := time.Now()
		startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

		var todays []models.Transaction
		if err := db.Where("created_at >= ?", startOfDay).Find(&todays).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Statistik tidak bisa diambil")
		}
		stats.TransaksiHariIni = int64(len(todays))
		for _, t := range todays {
			stats.PendapatanHariIni += t.TotalHarga
			stats.KeuntunganHariIni += t.Keuntungan
		}

		return c.JSON(stats)
	}
}
