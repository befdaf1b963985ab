package auth

import (
	"strings"

	"kantin-backend/internal/config"
	"kantin-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type RegisterRequest struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// POST /api/auth/register-admin
// Bootstrap admin pertama. Setelah ada satu admin, endpoint ini ditutup;
// user berikutnya dibuat lewat /api/auth/register oleh admin.
func RegisterAdminHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body RegisterRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Body request tidak valid")
		}

		body.Username = strings.TrimSpace(strings.ToLower(body.Username))
		body.Name = strings.TrimSpace(body.Name)

		if body.Username == "" || body.Password == "" || body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Username, nama, dan password wajib diisi")
		}

		var count int64
		db.Model(&models.User{}).
			Where("role = ?", models.RoleAdmin).
			Count(&count)
		if count > 0 {
			return fiber.NewError(fiber.StatusForbidden, "Admin sudah terdaftar")
		}

		user, err := createUser(db, body, models.RoleAdmin)
		if err != nil {
			return err
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"id":       user.ID,
			"username": user.Username,
			"role":     user.Role,
		})
	}
}

// POST /api/auth/register (hanya admin)
func RegisterUserHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body RegisterRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Body request tidak valid")
		}

		body.Username = strings.TrimSpace(strings.ToLower(body.Username))
		body.Name = strings.TrimSpace(body.Name)

		if body.Username == "" || body.Password == "" || body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Username, nama, dan password wajib diisi")
		}

		role := models.UserRole(body.Role)
		if role == "" {
			role = models.RoleKasir
		}
		if role != models.RoleAdmin && role != models.RoleKasir {
			return fiber.NewError(fiber.StatusBadRequest, "Role harus admin atau kasir")
		}

		var existing models.User
		if err := db.Where("username = ?", body.Username).First(&existing).Error; err == nil {
			return fiber.NewError(fiber.StatusBadRequest, "Username sudah digunakan")
		}

		user, err := createUser(db, body, role)
		if err != nil {
			return err
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"id":       user.ID,
			"username": user.Username,
			"name":     user.Name,
			"role":     user.Role,
		})
	}
}

func createUser(db *gorm.DB, body RegisterRequest, role models.UserRole) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Password tidak bisa di-hash")
	}

	user := models.User{
		Username:     body.Username,
		Name:         body.Name,
		PasswordHash: string(hash),
		Role:         role,
	}

	if err := db.Create(&user).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "User tidak bisa dibuat")
	}
	return &user, nil
}

// POST /api/auth/login
func LoginHandler(cfg *config.Config, db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body LoginRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Body request tidak valid")
		}

		body.Username = strings.TrimSpace(strings.ToLower(body.Username))

		var user models.User
		if err := db.Where("username = ?", body.Username).First(&user).Error; err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Username atau password salah")
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(body.Password)); err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Username atau password salah")
		}

		token, err := GenerateToken(cfg.JWTSecret, &user)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Token tidak bisa dibuat")
		}

		return c.JSON(fiber.Map{
			"token": token,
			"user": fiber.Map{
				"id":       user.ID,
				"username": user.Username,
				"name":     user.Name,
				"role":     user.Role,
			},
		})
	}
}

// GET /api/auth/me
// Token milik user yang sudah dihapus tidak berlaku lagi walau belum
// kedaluwarsa.
func MeHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := c.Locals(CtxUserIDKey).(uint)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "Token tidak valid")
		}

		var user models.User
		if err := db.First(&user, userID).Error; err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "User tidak ditemukan")
		}

		return c.JSON(fiber.Map{
			"user_id":  user.ID,
			"username": user.Username,
			"name":     user.Name,
			"role":     user.Role,
		})
	}
}
