package cart

import (
	"context"
	"errors"
	"strings"

	"kantin-backend/internal/audit"
	"kantin-backend/internal/auth"
	"kantin-backend/internal/catalog"
	"kantin-backend/internal/checkout"
	"kantin-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type AddItemRequest struct {
	BarcodeID string `json:"barcode_id"`
	Jumlah    int    `json:"jumlah"`
}

type UpdateItemRequest struct {
	Jumlah int `json:"jumlah"`
}

// AddProduct memasukkan produk ke keranjang user dengan pengecekan stok
// optimistis; stok divalidasi ulang secara atomik saat checkout.
func AddProduct(ctx context.Context, store Store, userID uint, p *models.Product, jumlah int) (*Cart, error) {
	crt, err := store.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	if crt.JumlahFor(p.BarcodeID)+jumlah > p.Stok {
		return nil, &StockError{Tersedia: p.Stok}
	}

	crt.Add(Item{
		BarcodeID:  p.BarcodeID,
		NamaProduk: p.NamaProduk,
		HargaJual:  p.HargaJual,
		Jumlah:     jumlah,
	})

	if err := store.Save(ctx, crt); err != nil {
		return nil, err
	}
	return crt, nil
}

func cartResponse(crt *Cart) fiber.Map {
	return fiber.Map{
		"items":       crt.Items,
		"total_harga": crt.Total(),
	}
}

// GET /api/cart
func GetCartHandler(store Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, _ := auth.UserInfo(c)

		crt, err := store.Get(c.Context(), userID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Keranjang tidak bisa diambil")
		}
		return c.JSON(cartResponse(crt))
	}
}

// POST /api/cart/items
func AddItemHandler(db *gorm.DB, store Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body AddItemRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Body request tidak valid")
		}

		if strings.TrimSpace(body.BarcodeID) == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Barcode ID wajib diisi")
		}
		if body.Jumlah == 0 {
			body.Jumlah = 1
		}
		if body.Jumlah < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Jumlah tidak boleh negatif")
		}

		p, err := catalog.FindByBarcode(db, body.BarcodeID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Produk tidak ditemukan")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Pencarian barcode gagal")
		}

		userID, _ := auth.UserInfo(c)
		crt, err := AddProduct(c.Context(), store, userID, p, body.Jumlah)
		if err != nil {
			var stockErr *StockError
			if errors.As(err, &stockErr) {
				return fiber.NewError(fiber.StatusBadRequest, stockErr.Error())
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Keranjang tidak bisa disimpan")
		}

		return c.JSON(cartResponse(crt))
	}
}

// PUT /api/cart/items/:barcode
func UpdateItemHandler(store Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		barcodeID := strings.ToUpper(strings.TrimSpace(c.Params("barcode")))

		var body UpdateItemRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Body request tidak valid")
		}
		if body.Jumlah < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Jumlah tidak boleh negatif")
		}

		userID, _ := auth.UserInfo(c)
		crt, err := store.Get(c.Context(), userID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Keranjang tidak bisa diambil")
		}

		if !crt.SetJumlah(barcodeID, body.Jumlah) {
			return fiber.NewError(fiber.StatusNotFound, "Produk tidak ada di keranjang")
		}

		if err := store.Save(c.Context(), crt); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Keranjang tidak bisa disimpan")
		}
		return c.JSON(cartResponse(crt))
	}
}

// DELETE /api/cart
func ClearCartHandler(store Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, _ := auth.UserInfo(c)
		if err := store.Delete(c.Context(), userID); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Keranjang tidak bisa dihapus")
		}
		return c.JSON(fiber.Map{"message": "Keranjang dikosongkan"})
	}
}

// POST /api/cart/checkout
// Menguras keranjang lewat checkout batch. Baris yang berhasil dihapus dari
// keranjang; baris yang gagal (stok kurang, produk terhapus) tetap tinggal
// supaya kasir bisa menyesuaikan.
func CheckoutCartHandler(svc *checkout.Service, db *gorm.DB, store Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, userName := auth.UserInfo(c)

		crt, err := store.Get(c.Context(), userID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Keranjang tidak bisa diambil")
		}
		if len(crt.Items) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Keranjang kosong")
		}

		items := make([]checkout.LineItem, 0, len(crt.Items))
		for _, it := range crt.Items {
			items = append(items, checkout.LineItem{BarcodeID: it.BarcodeID, Jumlah: it.Jumlah})
		}

		results := svc.CheckoutBatch(c.Context(), items)

		berhasil := 0
		for _, r := range results {
			if r.Success {
				berhasil++
				crt.Remove(strings.ToUpper(r.BarcodeID))
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
		}

		if len(crt.Items) == 0 {
			err = store.Delete(c.Context(), userID)
		} else {
			err = store.Save(c.Context(), crt)
		}
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Keranjang tidak bisa diperbarui")
		}

		return c.JSON(fiber.Map{
			"results":  results,
			"berhasil": berhasil,
			"gagal":    len(results) - berhasil,
			"sisa":     crt.Items,
		})
	}
}
