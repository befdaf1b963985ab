package catalog

import (
	"strings"

	"kantin-backend/internal/audit"
	"kantin-backend/internal/auth"
	"kantin-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type CreateProductRequest struct {
	BarcodeID  string `json:"barcode_id"`
	NamaProduk string `json:"nama_produk"`
	Kategori   string `json:"kategori"`
	Stok       int    `json:"stok"`
	HargaModal int    `json:"harga_modal"`
	HargaJual  int    `json:"harga_jual"`
}

type UpdateProductRequest struct {
	NamaProduk *string `json:"nama_produk"`
	Kategori   *string `json:"kategori"`
	Stok       *int    `json:"stok"`
	HargaModal *int    `json:"harga_modal"`
	HargaJual  *int    `json:"harga_jual"`
}

// GET /api/products
func ListProductsHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var products []models.Product
		if err := db.Order("created_at desc").Find(&products).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Produk tidak bisa diambil")
		}
		return c.JSON(products)
	}
}

// POST /api/products (hanya admin)
func CreateProductHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateProductRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Body request tidak valid")
		}

		body.BarcodeID = strings.ToUpper(strings.TrimSpace(body.BarcodeID))
		body.NamaProduk = strings.TrimSpace(body.NamaProduk)
		body.Kategori = strings.TrimSpace(body.Kategori)

		if body.BarcodeID == "" || body.NamaProduk == "" || body.Kategori == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Barcode, nama produk, dan kategori wajib diisi")
		}
		if !models.ValidKategori(body.Kategori) {
			return fiber.NewError(fiber.StatusBadRequest, "Kategori tidak dikenal")
		}
		if body.Stok < 0 || body.HargaModal < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Stok dan harga tidak boleh negatif")
		}
		if body.HargaJual <= body.HargaModal {
			return fiber.NewError(fiber.StatusBadRequest, "Harga jual harus lebih besar dari harga modal")
		}

		var existing models.Product
		if err := db.Where("barcode_id = ?", body.BarcodeID).First(&existing).Error; err == nil {
			return fiber.NewError(fiber.StatusBadRequest, "Barcode ID sudah digunakan")
		}

		p := models.Product{
			BarcodeID:  body.BarcodeID,
			NamaProduk: body.NamaProduk,
			Kategori:   body.Kategori,
			Stok:       body.Stok,
			HargaModal: body.HargaModal,
			HargaJual:  body.HargaJual,
		}

		if err := db.Create(&p).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Produk tidak bisa dibuat")
		}

		userID, userName := auth.UserInfo(c)
		_ = audit.WriteLog(db, audit.LogOptions{
			UserID:      userID,
			UserName:    userName,
			EntityType:  "product",
			EntityID:    p.ID,
			Action:      models.AuditActionCreate,
			Description: "Produk dibuat: " + p.NamaProduk,
			After:       p,
		})

		return c.Status(fiber.StatusCreated).JSON(p)
	}
}

// PUT /api/products?id=<id> (hanya admin)
func UpdateProductHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Query("id")
		if id == "" {
			return fiber.NewError(fiber.StatusBadRequest, "ID wajib diisi")
		}

		var p models.Product
		if err := db.First(&p, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Produk tidak ditemukan")
		}
		before := p

		var body UpdateProductRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Body request tidak valid")
		}

		if body.NamaProduk != nil {
			nama := strings.TrimSpace(*body.NamaProduk)
			if nama == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Nama produk tidak boleh kosong")
			}
			p.NamaProduk = nama
		}
		if body.Kategori != nil {
			kategori := strings.TrimSpace(*body.Kategori)
			if !models.ValidKategori(kategori) {
				return fiber.NewError(fiber.StatusBadRequest, "Kategori tidak dikenal")
			}
			p.Kategori = kategori
		}
		if body.Stok != nil {
			if *body.Stok < 0 {
				return fiber.NewError(fiber.StatusBadRequest, "Stok tidak boleh negatif")
			}
			p.Stok = *body.Stok
		}
		if body.HargaModal != nil {
			p.HargaModal = *body.HargaModal
		}
		if body.HargaJual != nil {
			p.HargaJual = *body.HargaJual
		}

		// Invariant harga dicek terhadap hasil gabungan, bukan hanya field yang dikirim
		if p.HargaJual <= p.HargaModal {
			return fiber.NewError(fiber.StatusBadRequest, "Harga jual harus lebih besar dari harga modal")
		}

		if err := db.Save(&p).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Produk tidak bisa diperbarui")
		}

		userID, userName := auth.UserInfo(c)
		_ = audit.WriteLog(db, audit.LogOptions{
			UserID:      userID,
			UserName:    userName,
			EntityType:  "product",
			EntityID:    p.ID,
			Action:      models.AuditActionUpdate,
			Description: "Produk diperbarui: " + p.NamaProduk,
			Before:      before,
			After:       p,
		})

		return c.JSON(p)
	}
}

// DELETE /api/products?id=<id> (hanya admin)
func DeleteProductHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Query("id")
		if id == "" {
			return fiber.NewError(fiber.StatusBadRequest, "ID wajib diisi")
		}

		var p models.Product
		if err := db.First(&p, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Produk tidak ditemukan")
		}

		if err := db.Delete(&p).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Produk tidak bisa dihapus")
		}

		userID, userName := auth.UserInfo(c)
		_ = audit.WriteLog(db, audit.LogOptions{
			UserID:      userID,
			UserName:    userName,
			EntityType:  "product",
			EntityID:    p.ID,
			Action:      models.AuditActionDelete,
			Description: "Produk dihapus: " + p.NamaProduk,
			Before:      p,
		})

		return c.JSON(fiber.Map{"message": "Produk berhasil dihapus"})
	}
}
