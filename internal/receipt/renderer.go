package receipt

import (
	"fmt"
	"html/template"
	"io"
	"strings"
	"time"

	"kantin-backend/internal/models"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Penyaji struk: fungsi murni dari transaksi + pengaturan cetak ke markup
// HTML untuk printer thermal 58mm/80mm. Markup mengikuti struk aplikasi
// kasir yang sudah dipakai.

type Line struct {
	NamaProduk  string
	Jumlah      int
	HargaSatuan int
	TotalHarga  int
}

type Data struct {
	Kode    string
	Tanggal time.Time
	Kasir   string
	Lines   []Line
	Total   int
}

// FromTransactions merangkai satu struk dari satu atau beberapa baris
// ledger (hasil checkout keranjang).
func FromTransactions(trxs []models.Transaction, kasir string) Data {
	d := Data{Kasir: kasir}

	codes := make([]string, 0, len(trxs))
	for _, t := range trxs {
		codes = append(codes, t.TransaksiID)
		d.Lines = append(d.Lines, Line{
			NamaProduk:  t.NamaProduk,
			Jumlah:      t.Jumlah,
			HargaSatuan: t.HargaSatuan,
			TotalHarga:  t.TotalHarga,
		})
		d.Total += t.TotalHarga
	}

	d.Kode = strings.Join(codes, ", ")
	if len(trxs) > 0 {
		d.Tanggal = trxs[0].CreatedAt
	}
	return d
}

var idPrinter = message.NewPrinter(language.Indonesian)

// FormatRupiah memformat angka gaya id-ID: 12000 -> "Rp 12.000".
func FormatRupiah(n int) string {
	return idPrinter.Sprintf("Rp %d", n)
}

var bulanPendek = [...]string{"Jan", "Feb", "Mar", "Apr", "Mei", "Jun", "Jul", "Agu", "Sep", "Okt", "Nov", "Des"}

func formatTanggal(t time.Time) string {
	return fmt.Sprintf("%02d %s %d %02d.%02d", t.Day(), bulanPendek[t.Month()-1], t.Year(), t.Hour(), t.Minute())
}

var receiptTmpl = template.Must(template.New("receipt").Funcs(template.FuncMap{
	"rupiah":  FormatRupiah,
	"tanggal": formatTanggal,
}).Parse(`<!DOCTYPE html>
<html>
  <head>
    <meta charset="UTF-8">
    <title>Struk - {{.Data.Kode}}</title>
    <style>
      @page { size: {{.Setting.PaperWidth}} auto; margin: 0; }
      * { margin: 0; padding: 0; box-sizing: border-box; }
      body {
        font-family: 'Courier New', monospace;
        font-size: 12px;
        width: {{.Setting.PaperWidth}};
        padding: 5mm;
        line-height: 1.4;
      }
      .header { text-align: center; border-bottom: 1px dashed #000; padding-bottom: 8px; margin-bottom: 8px; }
      .logo { font-size: 24px; margin-bottom: 4px; }
      .store-name { font-size: 16px; font-weight: bold; margin-bottom: 2px; }
      .store-info { font-size: 10px; }
      .transaction-info { margin-bottom: 8px; font-size: 11px; }
      .items { border-top: 1px dashed #000; border-bottom: 1px dashed #000; padding: 8px 0; margin-bottom: 8px; }
      .item { margin-bottom: 6px; }
      .item-name { font-weight: bold; margin-bottom: 2px; }
      .item-detail { display: flex; justify-content: space-between; font-size: 11px; }
      .total { border-top: 1px solid #000; padding-top: 8px; margin-top: 8px; }
      .total-row { display: flex; justify-content: space-between; margin-bottom: 4px; }
      .total-label, .total-amount { font-weight: bold; font-size: 14px; }
      .footer { text-align: center; margin-top: 12px; padding-top: 8px; border-top: 1px dashed #000; font-size: 10px; }
      .thank-you { font-weight: bold; margin-bottom: 4px; }
      @media print { body { width: {{.Setting.PaperWidth}}; } }
    </style>
  </head>
  <body>
    <div class="header">
      {{- if .Setting.ShowLogo}}
      <div class="logo">&#127978;</div>
      {{- end}}
      <div class="store-name">{{.Setting.StoreName}}</div>
      {{- if .Setting.StoreAddress}}
      <div class="store-info">{{.Setting.StoreAddress}}</div>
      {{- end}}
      {{- if .Setting.StorePhone}}
      <div class="store-info">Telp: {{.Setting.StorePhone}}</div>
      {{- end}}
    </div>

    <div class="transaction-info">
      <div>No: {{.Data.Kode}}</div>
      <div>Tanggal: {{tanggal .Data.Tanggal}}</div>
      {{- if .Setting.ShowKasir}}
      <div>Kasir: {{.Data.Kasir}}</div>
      {{- end}}
    </div>

    <div class="items">
      {{- range .Data.Lines}}
      <div class="item">
        <div class="item-name">{{.NamaProduk}}</div>
        <div class="item-detail">
          <span>{{.Jumlah}} x {{rupiah .HargaSatuan}}</span>
          <span>{{rupiah .TotalHarga}}</span>
        </div>
      </div>
      {{- end}}
    </div>

    <div class="total">
      <div class="total-row">
        <span class="total-label">TOTAL:</span>
        <span class="total-amount">{{rupiah .Data.Total}}</span>
      </div>
    </div>

    <div class="footer">
      <div class="thank-you">TERIMA KASIH</div>
      <div>Selamat Berbelanja Kembali!</div>
      {{- if .Setting.StoreWebsite}}
      <div style="margin-top: 8px;">{{.Setting.StoreWebsite}}</div>
      {{- end}}
    </div>
  </body>
</html>
`))

// Render menulis struk HTML. Tidak ada efek samping lain; pemanggilan print
// dilakukan browser.
func Render(w io.Writer, data Data, setting models.PrintSetting) error {
	return receiptTmpl.Execute(w, struct {
		Data    Data
		Setting models.PrintSetting
	}{Data: data, Setting: setting})
}
