package checkout

import (
	"errors"

	"kantin-backend/internal/audit"
	"kantin-backend/internal/auth"
	"kantin-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type CreateTransactionRequest struct {
	BarcodeID string `json:"barcode_id"`
	Jumlah    int    `json:"jumlah"`
}

type BatchCheckoutRequest struct {
	Items []LineItem `json:"items"`
}

// toFiberError memetakan error service ke status HTTP.
func toFiberError(err error) *fiber.Error {
	var stockErr *InsufficientStockError
	switch {
	case errors.Is(err, ErrProductNotFound):
		return fiber.NewError(fiber.StatusNotFound, "Produk tidak ditemukan")
	case errors.Is(err, ErrInvalidRequest):
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request data")
	case errors.As(err, &stockErr):
		return fiber.NewError(fiber.StatusBadRequest, stockErr.Error())
	default:
		return fiber.NewError(fiber.StatusInternalServerError, "Transaksi gagal diproses")
	}
}

// GET /api/transactions
func ListTransactionsHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var transactions []models.Transaction
		if err := db.Order("created_at desc").Find(&transactions).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Transaksi tidak bisa diambil")
		}
		return c.JSON(transactions)
	}
}

// POST /api/transactions
func CreateTransactionHandler(svc *Service, db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateTransactionRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request data")
		}

		trx, err := svc.Checkout(c.Context(), body.BarcodeID, body.Jumlah)
		if err != nil {
			return toFiberError(err)
		}

		userID, userName := auth.UserInfo(c)
		_ = audit.WriteLog(db, audit.LogOptions{
			UserID:      userID,
			UserName:    userName,
			EntityType:  "transaction",
			EntityID:    trx.ID,
			Action:      models.AuditActionCheckout,
			Description: trx.TransaksiID + ": " + trx.NamaProduk,
			After:       trx,
		})

		return c.Status(fiber.StatusCreated).JSON(trx)
	}
}

// POST /api/transactions/batch
// Item diproses berurutan; hasil per item dikembalikan apa adanya dan item
// yang sudah berhasil tetap tercatat walau item lain gagal.
func BatchCheckoutHandler(svc *Service, db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body BatchCheckoutRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request data")
		}
		if len(body.Items) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Daftar item kosong")
		}

		results := svc.CheckoutBatch(c.Context(), body.Items)

		berhasil := 0
		userID, userName := auth.UserInfo(c)
		for _, r := range results {
			if !r.Success {
				continue
			}
			berhasil++
			_ = audit.WriteLog(db, audit.LogOptions{
				UserID:      userID,
				UserName:    userName,
				EntityType:  "transaction",
				EntityID:    r.Transaction.ID,
				Action:      models.AuditActionCheckout,
				Description: r.Transaction.TransaksiID + ": " + r.Transaction.NamaProduk,
				After:       r.Transaction,
			})
		}

		return c.JSON(fiber.Map{
			"results":    results,
			"total_item": len(results),
			"berhasil":   berhasil,
			"gagal":      len(results) - berhasil,
		})
	}
}
