package report

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"kantin-backend/internal/database"
	"kantin-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newReportApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{"error": e.Message})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		},
	})
	app.Get("/reports/summary", SummaryHandler(db))
	app.Get("/reports/export", ExportCSVHandler(db))
	app.Get("/dashboard/stats", DashboardStatsHandler(db))

	return app, db
}

func seedTrx(t *testing.T, db *gorm.DB, kode string, jumlah, hargaSatuan, keuntungan int, at time.Time) {
	t.Helper()
	trx := models.Transaction{
		TransaksiID: kode,
		ProductID:   1,
		BarcodeID:   "BRK100",
		NamaProduk:  "Teh Botol",
		Jumlah:      jumlah,
		HargaSatuan: hargaSatuan,
		TotalHarga:  jumlah * hargaSatuan,
		Keuntungan:  keuntungan,
		CreatedAt:   at,
	}
	require.NoError(t, db.Create(&trx).Error)
}

func TestSummary(t *testing.T) {
	app, db := newReportApp(t)

	day1 := time.Date(2026, time.August, 1, 10, 0, 0, 0, time.Local)
	day2 := time.Date(2026, time.August, 2, 11, 0, 0, 0, time.Local)
	seedTrx(t, db, "TRX00001", 3, 4000, 3000, day1)
	seedTrx(t, db, "TRX00002", 1, 2500, 1000, day1)
	seedTrx(t, db, "TRX00003", 2, 4000, 2000, day2)
	// Di luar rentang laporan
	seedTrx(t, db, "TRX00004", 1, 4000, 1000, time.Date(2026, time.September, 5, 9, 0, 0, 0, time.Local))

	req := httptest.NewRequest(fiber.MethodGet, "/reports/summary?from=2026-08-01&to=2026-08-31", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var res SummaryResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&res))

	require.Equal(t, 3, res.TotalTransaksi)
	require.Equal(t, 6, res.TotalItem)
	require.Equal(t, 3*4000+2500+2*4000, res.TotalPendapatan)
	require.Equal(t, 6000, res.TotalKeuntungan)

	require.Len(t, res.Harian, 2)
	require.Equal(t, "2026-08-01", res.Harian[0].Date)
	require.Equal(t, 2, res.Harian[0].Transaksi)
	require.Equal(t, 14500, res.Harian[0].Pendapatan)
	require.Equal(t, "2026-08-02", res.Harian[1].Date)
	require.Equal(t, 8000, res.Harian[1].Pendapatan)
}

func TestSummary_RangeValidation(t *testing.T) {
	app, _ := newReportApp(t)

	cases := []string{
		"/reports/summary",
		"/reports/summary?from=2026-08-01",
		"/reports/summary?from=bukan-tanggal&to=2026-08-31",
		"/reports/summary?from=2026-08-31&to=2026-08-01",
	}
	for _, path := range cases {
		req := httptest.NewRequest(fiber.MethodGet, path, nil)
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		require.Equal(t, fiber.StatusBadRequest, resp.StatusCode, path)
	}
}

func TestExportCSV(t *testing.T) {
	app, db := newReportApp(t)
	seedTrx(t, db, "TRX00001", 3, 4000, 3000, time.Date(2026, time.August, 1, 10, 0, 0, 0, time.Local))

	req := httptest.NewRequest(fiber.MethodGet, "/reports/export?from=2026-08-01&to=2026-08-31", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Contains(t, resp.Header.Get(fiber.HeaderContentType), "text/csv")
	require.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), "laporan-penjualan-2026-08-01-2026-08-31.csv")

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	require.Len(t, lines, 2)
	require.Equal(t, "ID Transaksi,Produk,Barcode,Jumlah,Harga Satuan,Total,Keuntungan,Tanggal", strings.TrimSpace(lines[0]))
	require.Contains(t, lines[1], "TRX00001,Teh Botol,BRK100,3,4000,12000,3000")
}

func TestDashboardStats(t *testing.T) {
	app, db := newReportApp(t)

	require.NoError(t, db.Create(&models.Product{BarcodeID: "BRK100", NamaProduk: "Teh Botol", Kategori: models.KategoriMinuman, Stok: 50, HargaModal: 3000, HargaJual: 4000}).Error)
	require.NoError(t, db.Create(&models.Product{BarcodeID: "BRK200", NamaProduk: "Roti", Kategori: models.KategoriMakanan, Stok: 3, HargaModal: 1500, HargaJual: 2500}).Error)

	seedTrx(t, db, "TRX00001", 2, 4000, 2000, time.Now())
	// Kemarin, tidak ikut statistik hari ini
	seedTrx(t, db, "TRX00002", 1, 4000, 1000, time.Now().AddDate(0, 0, -1))

	req := httptest.NewRequest(fiber.MethodGet, "/dashboard/stats", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var stats DashboardStats
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&stats))
	require.EqualValues(t, 2, stats.TotalProduk)
	require.EqualValues(t, 1, stats.StokMenipis)
	require.EqualValues(t, 1, stats.TransaksiHariIni)
	require.Equal(t, 8000, stats.PendapatanHariIni)
	require.Equal(t, 2000, stats.KeuntunganHariIni)
}
