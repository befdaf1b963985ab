package scanner

import (
	"errors"
	"strings"

	"kantin-backend/internal/auth"
	"kantin-backend/internal/cart"
	"kantin-backend/internal/catalog"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type CreateSessionRequest struct {
	Mode Mode `json:"mode"`
}

type ScanEventRequest struct {
	BarcodeID string `json:"barcode_id"`
}

// POST /api/scan/sessions
func CreateSessionHandler(mgr *Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateSessionRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Body request tidak valid")
		}

		if body.Mode == "" {
			body.Mode = ModeSingle
		}
		if !ValidMode(body.Mode) {
			return fiber.NewError(fiber.StatusBadRequest, "Mode harus single atau multi")
		}

		userID, _ := auth.UserInfo(c)
		s := mgr.Create(userID, body.Mode)

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"session_id":  s.ID,
			"mode":        s.Mode,
			"cooldown_ms": mgr.Cooldown().Milliseconds(),
		})
	}
}

// POST /api/scan/sessions/:id/events
// Satu event per kode yang berhasil di-decode kamera. Pada mode multi,
// produk yang dikenali langsung masuk keranjang kasir.
func ScanEventHandler(mgr *Manager, db *gorm.DB, store cart.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		s, ok := mgr.Get(c.Params("id"))
		if !ok {
			return fiber.NewError(fiber.StatusNotFound, "Sesi scan tidak ditemukan")
		}

		userID, _ := auth.UserInfo(c)
		if s.UserID != userID {
			return fiber.NewError(fiber.StatusForbidden, "Sesi scan milik user lain")
		}

		var body ScanEventRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Body request tidak valid")
		}

		code := strings.ToUpper(strings.TrimSpace(body.BarcodeID))
		if code == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Barcode ID wajib diisi")
		}

		obs := s.Observe(code)
		if obs.Duplicate {
			return c.JSON(fiber.Map{"accepted": false, "duplicate": true})
		}
		if !obs.Accepted {
			return c.JSON(fiber.Map{"accepted": false, "done": true})
		}

		p, err := catalog.FindByBarcode(db, code)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
					"accepted":   true,
					"found":      false,
					"barcode_id": code,
					"error":      "Produk tidak ditemukan",
				})
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Pencarian barcode gagal")
		}

		res := fiber.Map{
			"accepted": true,
			"found":    true,
			"product":  p,
			"done":     obs.Done,
		}

		if s.Mode == ModeMulti {
			crt, err := cart.AddProduct(c.Context(), store, userID, p, 1)
			if err != nil {
				var stockErr *cart.StockError
				if errors.As(err, &stockErr) {
					return fiber.NewError(fiber.StatusBadRequest, stockErr.Error())
				}
				return fiber.NewError(fiber.StatusInternalServerError, "Keranjang tidak bisa disimpan")
			}
			res["cart_total"] = crt.Total()
		}

		return c.JSON(res)
	}
}

// DELETE /api/scan/sessions/:id
func StopSessionHandler(mgr *Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		mgr.Remove(c.Params("id"))
		return c.JSON(fiber.Map{"message": "Sesi scan dihentikan"})
	}
}

// GET /api/scan/camera-help?error=NotAllowedError
func CameraHelpHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		name := c.Query("error")
		if name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Parameter error wajib diisi")
		}
		return c.JSON(ClassifyCameraError(name))
	}
}
