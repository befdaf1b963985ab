package settings

import (
	"errors"
	"strings"

	"kantin-backend/internal/audit"
	"kantin-backend/internal/auth"
	"kantin-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type UpdatePrintSettingRequest struct {
	StoreName    *string `json:"store_name"`
	StoreAddress *string `json:"store_address"`
	StorePhone   *string `json:"store_phone"`
	StoreWebsite *string `json:"store_website"`
	PaperWidth   *string `json:"paper_width"`
	ShowLogo     *bool   `json:"show_logo"`
	ShowKasir    *bool   `json:"show_kasir"`
	AutoPrint    *bool   `json:"auto_print"`
}

// GetOrCreate mengambil baris pengaturan cetak; dibuat dengan nilai default
// saat pertama kali diminta.
func GetOrCreate(db *gorm.DB) (*models.PrintSetting, error) {
	var s models.PrintSetting
	err := db.First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		s = models.DefaultPrintSetting()
		if err := db.Create(&s).Error; err != nil {
			return nil, err
		}
		return &s, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// GET /api/settings/print
func GetPrintSettingHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		s, err := GetOrCreate(db)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Pengaturan tidak bisa diambil")
		}
		return c.JSON(s)
	}
}

// PUT /api/settings/print (hanya admin)
func UpdatePrintSettingHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		s, err := GetOrCreate(db)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Pengaturan tidak bisa diambil")
		}
		before := *s

		var body UpdatePrintSettingRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Body request tidak valid")
		}

		if body.StoreName != nil {
			name := strings.TrimSpace(*body.StoreName)
			if name == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Nama toko tidak boleh kosong")
			}
			s.StoreName = name
		}
		if body.StoreAddress != nil {
			s.StoreAddress = strings.TrimSpace(*body.StoreAddress)
		}
		if body.StorePhone != nil {
			s.StorePhone = strings.TrimSpace(*body.StorePhone)
		}
		if body.StoreWebsite != nil {
			s.StoreWebsite = strings.TrimSpace(*body.StoreWebsite)
		}
		if body.PaperWidth != nil {
			if *body.PaperWidth != models.PaperWidth58 && *body.PaperWidth != models.PaperWidth80 {
				return fiber.NewError(fiber.StatusBadRequest, "Lebar kertas harus 58mm atau 80mm")
			}
			s.PaperWidth = *body.PaperWidth
		}
		if body.ShowLogo != nil {
			s.ShowLogo = *body.ShowLogo
		}
		if body.ShowKasir != nil {
			s.ShowKasir = *body.ShowKasir
		}
		if body.AutoPrint != nil {
			s.AutoPrint = *body.AutoPrint
		}

		if err := db.Save(s).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Pengaturan tidak bisa disimpan")
		}

		userID, userName := auth.UserInfo(c)
		_ = audit.WriteLog(db, audit.LogOptions{
			UserID:      userID,
			UserName:    userName,
			EntityType:  "print_setting",
			EntityID:    s.ID,
			Action:      models.AuditActionUpdate,
			Description: "Pengaturan cetak diperbarui",
			Before:      before,
			After:       s,
		})

		return c.JSON(s)
	}
}
