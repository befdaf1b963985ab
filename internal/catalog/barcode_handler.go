package catalog

import (
	"errors"
	"strings"

	"kantin-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type ScanBarcodeRequest struct {
	BarcodeID string `json:"barcode_id"`
}

// FindByBarcode mencari produk berdasarkan barcode. Input dinormalisasi ke
// uppercase dulu, jadi "brk001" dan "BRK001" menunjuk produk yang sama.
func FindByBarcode(db *gorm.DB, barcodeID string) (*models.Product, error) {
	barcodeID = strings.ToUpper(strings.TrimSpace(barcodeID))

	var p models.Product
	if err := db.Where("barcode_id = ?", barcodeID).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// POST /api/barcode
func ScanBarcodeHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body ScanBarcodeRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Body request tidak valid")
		}

		if strings.TrimSpace(body.BarcodeID) == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Barcode ID wajib diisi")
		}

		p, err := FindByBarcode(db, body.BarcodeID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
					"error":      "Produk tidak ditemukan",
					"barcode_id": body.BarcodeID,
					"found":      false,
				})
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Pencarian barcode gagal")
		}

		return c.JSON(fiber.Map{
			"success": true,
			"found":   true,
			"product": p,
		})
	}
}
