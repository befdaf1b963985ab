package receipt

import (
	"bytes"
	"testing"
	"time"

	"kantin-backend/internal/models"

	"github.com/stretchr/testify/require"
)

func sampleTransactions() []models.Transaction {
	trx := models.Transaction{
		TransaksiID: "TRX00001",
		ProductID:   1,
		BarcodeID:   "BRK100",
		NamaProduk:  "Teh Botol",
		Jumlah:      3,
		HargaSatuan: 4000,
		TotalHarga:  12000,
		Keuntungan:  3000,
	}
	trx.CreatedAt = time.Date(2026, time.August, 29, 14, 5, 0, 0, time.Local)
	return []models.Transaction{trx}
}

func TestFormatRupiah(t *testing.T) {
	require.Equal(t, "Rp 0", FormatRupiah(0))
	require.Equal(t, "Rp 4.000", FormatRupiah(4000))
	require.Equal(t, "Rp 12.000", FormatRupiah(12000))
	require.Equal(t, "Rp 1.250.000", FormatRupiah(1250000))
}

func TestFormatTanggal(t *testing.T) {
	waktu := time.Date(2026, time.August, 29, 14, 5, 0, 0, time.Local)
	require.Equal(t, "29 Agu 2026 14.05", formatTanggal(waktu))
}

func TestFromTransactions(t *testing.T) {
	trxs := sampleTransactions()
	trx2 := trxs[0]
	trx2.TransaksiID = "TRX00002"
	trx2.NamaProduk = "Roti"
	trx2.Jumlah = 1
	trx2.HargaSatuan = 2500
	trx2.TotalHarga = 2500
	trxs = append(trxs, trx2)

	d := FromTransactions(trxs, "Budi")
	require.Equal(t, "TRX00001, TRX00002", d.Kode)
	require.Equal(t, "Budi", d.Kasir)
	require.Equal(t, 14500, d.Total)
	require.Len(t, d.Lines, 2)
	require.Equal(t, trxs[0].CreatedAt, d.Tanggal)
}

func TestRender(t *testing.T) {
	data := FromTransactions(sampleTransactions(), "Budi")
	setting := models.DefaultPrintSetting()

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, data, setting))

	html := buf.String()
	require.Contains(t, html, "KANTIN SEKOLAH")
	require.Contains(t, html, "No: TRX00001")
	require.Contains(t, html, "Kasir: Budi")
	require.Contains(t, html, "Teh Botol")
	require.Contains(t, html, "3 x Rp 4.000")
	require.Contains(t, html, "Rp 12.000")
	require.Contains(t, html, "TERIMA KASIH")
	require.Contains(t, html, "size: 58mm auto")
}

func TestRender_SettingToggles(t *testing.T) {
	data := FromTransactions(sampleTransactions(), "Budi")

	setting := models.DefaultPrintSetting()
	setting.PaperWidth = "80mm"
	setting.ShowLogo = false
	setting.ShowKasir = false
	setting.StoreWebsite = ""

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, data, setting))

	html := buf.String()
	require.Contains(t, html, "size: 80mm auto")
	require.NotContains(t, html, "class=\"logo\"")
	require.NotContains(t, html, "Kasir:")
	require.NotContains(t, html, "www.kantinsekolah.com")
}
