package receipt

import (
	"bytes"
	"strconv"
	"strings"

	"kantin-backend/internal/auth"
	"kantin-backend/internal/models"
	"kantin-backend/internal/settings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func render(c *fiber.Ctx, db *gorm.DB, trxs []models.Transaction) error {
	setting, err := settings.GetOrCreate(db)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Pengaturan cetak tidak bisa diambil")
	}

	_, kasir := auth.UserInfo(c)
	if kasir == "" {
		kasir = "Admin"
	}

	var buf bytes.Buffer
	if err := Render(&buf, FromTransactions(trxs, kasir), *setting); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Struk tidak bisa dibuat")
	}

	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Send(buf.Bytes())
}

// GET /api/transactions/:id/receipt
// :id menerima id numerik atau kode transaksi (TRX00001).
func TransactionReceiptHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var trx models.Transaction
		var err error
		if n, perr := strconv.Atoi(id); perr == nil {
			err = db.First(&trx, n).Error
		} else {
			err = db.Where("transaksi_id = ?", strings.ToUpper(id)).First(&trx).Error
		}
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Transaksi tidak ditemukan")
		}

		return render(c, db, []models.Transaction{trx})
	}
}

// GET /api/receipts?ids=1,2,3
// Struk gabungan untuk hasil checkout keranjang multi-item.
func CombinedReceiptHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		idsParam := strings.TrimSpace(c.Query("ids"))
		if idsParam == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Parameter ids wajib diisi")
		}

		parts := strings.Split(idsParam, ",")
		ids := make([]uint, 0, len(parts))
		for _, p := range parts {
			n, err := strconv.Atoi(strings.TrimSpace(p))
			if err != nil || n <= 0 {
				return fiber.NewError(fiber.StatusBadRequest, "Parameter ids tidak valid")
			}
			ids = append(ids, uint(n))
		}

		var trxs []models.Transaction
		if err := db.Where("id IN ?", ids).Order("id asc").Find(&trxs).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Transaksi tidak bisa diambil")
		}
		if len(trxs) == 0 {
			return fiber.NewError(fiber.StatusNotFound, "Transaksi tidak ditemukan")
		}

		return render(c, db, trxs)
	}
}
