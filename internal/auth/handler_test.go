package auth

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"kantin-backend/internal/config"
	"kantin-backend/internal/database"
	"kantin-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testSecret = "rahasia-panjang-untuk-pengujian-jwt-kantin"

func newAuthApp(t *testing.T) (*fiber.App, *gorm.DB, *config.Config) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))

	cfg := &config.Config{JWTSecret: testSecret}

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{"error": e.Message})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		},
	})
	app.Post("/auth/register-admin", RegisterAdminHandler(db))
	app.Post("/auth/login", LoginHandler(cfg, db))

	protected := app.Group("/", JWTMiddleware(cfg))
	protected.Get("/auth/me", MeHandler(db))
	protected.Post("/auth/register", RequireRole(models.RoleAdmin), RegisterUserHandler(db))

	return app, db, cfg
}

func authRequest(t *testing.T, app *fiber.App, method, path, token string, body any) (*http.Response, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var decoded map[string]any
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &decoded))
	}
	return resp, decoded
}

func registerAdmin(t *testing.T, app *fiber.App) {
	t.Helper()
	resp, _ := authRequest(t, app, fiber.MethodPost, "/auth/register-admin", "", map[string]any{
		"username": "Admin",
		"name":     "Administrator",
		"password": "kata-sandi-aman",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
}

func login(t *testing.T, app *fiber.App, username, password string) string {
	t.Helper()
	resp, body := authRequest(t, app, fiber.MethodPost, "/auth/login", "", map[string]any{
		"username": username,
		"password": password,
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func TestGenerateToken_RoundTrip(t *testing.T) {
	user := &models.User{Username: "budi", Role: models.RoleKasir}
	user.ID = 7

	tokenStr, err := GenerateToken(testSecret, user)
	require.NoError(t, err)

	token, err := jwt.ParseWithClaims(tokenStr, &JWTCustomClaims{}, func(t *jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	require.NoError(t, err)
	require.True(t, token.Valid)

	claims := token.Claims.(*JWTCustomClaims)
	require.EqualValues(t, 7, claims.UserID)
	require.Equal(t, "budi", claims.Username)
	require.Equal(t, models.RoleKasir, claims.Role)
}

func TestRegisterAdmin_OnlyOnce(t *testing.T) {
	app, db, _ := newAuthApp(t)
	registerAdmin(t, app)

	// Username dinormalisasi ke lowercase
	var user models.User
	require.NoError(t, db.Where("username = ?", "admin").First(&user).Error)
	require.Equal(t, models.RoleAdmin, user.Role)
	require.NotEqual(t, "kata-sandi-aman", user.PasswordHash)

	resp, body := authRequest(t, app, fiber.MethodPost, "/auth/register-admin", "", map[string]any{
		"username": "lain",
		"name":     "Admin Lain",
		"password": "rahasia",
	})
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	require.Equal(t, "Admin sudah terdaftar", body["error"])
}

func TestLogin(t *testing.T) {
	app, _, _ := newAuthApp(t)
	registerAdmin(t, app)

	t.Run("berhasil", func(t *testing.T) {
		resp, body := authRequest(t, app, fiber.MethodPost, "/auth/login", "", map[string]any{
			"username": "ADMIN",
			"password": "kata-sandi-aman",
		})
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		require.NotEmpty(t, body["token"])
		user := body["user"].(map[string]any)
		require.Equal(t, "admin", user["username"])
		require.Equal(t, "admin", user["role"])
	})

	t.Run("password salah", func(t *testing.T) {
		resp, body := authRequest(t, app, fiber.MethodPost, "/auth/login", "", map[string]any{
			"username": "admin",
			"password": "salah",
		})
		require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
		require.Equal(t, "Username atau password salah", body["error"])
	})

	t.Run("user tidak ada", func(t *testing.T) {
		resp, _ := authRequest(t, app, fiber.MethodPost, "/auth/login", "", map[string]any{
			"username": "hantu",
			"password": "apapun",
		})
		require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})
}

func TestJWTMiddleware(t *testing.T) {
	app, _, _ := newAuthApp(t)
	registerAdmin(t, app)
	token := login(t, app, "admin", "kata-sandi-aman")

	t.Run("token valid", func(t *testing.T) {
		resp, body := authRequest(t, app, fiber.MethodGet, "/auth/me", token, nil)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		require.Equal(t, "admin", body["username"])
	})

	t.Run("tanpa header", func(t *testing.T) {
		resp, _ := authRequest(t, app, fiber.MethodGet, "/auth/me", "", nil)
		require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("token rusak", func(t *testing.T) {
		resp, _ := authRequest(t, app, fiber.MethodGet, "/auth/me", "bukan.token.jwt", nil)
		require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("user sudah dihapus", func(t *testing.T) {
		app, db, _ := newAuthApp(t)
		registerAdmin(t, app)
		deletedToken := login(t, app, "admin", "kata-sandi-aman")

		require.NoError(t, db.Where("username = ?", "admin").Delete(&models.User{}).Error)

		resp, _ := authRequest(t, app, fiber.MethodGet, "/auth/me", deletedToken, nil)
		require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("secret berbeda", func(t *testing.T) {
		user := &models.User{Username: "admin", Role: models.RoleAdmin}
		user.ID = 1
		forged, err := GenerateToken("secret-lain-yang-juga-cukup-panjang", user)
		require.NoError(t, err)

		resp, _ := authRequest(t, app, fiber.MethodGet, "/auth/me", forged, nil)
		require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})
}

func TestRegisterUser_RoleChecks(t *testing.T) {
	app, _, _ := newAuthApp(t)
	registerAdmin(t, app)
	adminToken := login(t, app, "admin", "kata-sandi-aman")

	// Admin membuat kasir; role kosong default kasir
	resp, body := authRequest(t, app, fiber.MethodPost, "/auth/register", adminToken, map[string]any{
		"username": "budi",
		"name":     "Budi",
		"password": "sandi-budi",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	require.Equal(t, "kasir", body["role"])

	// Role di luar admin/kasir ditolak
	resp, _ = authRequest(t, app, fiber.MethodPost, "/auth/register", adminToken, map[string]any{
		"username": "siti",
		"name":     "Siti",
		"password": "sandi-siti",
		"role":     "manajer",
	})
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	// Username duplikat ditolak
	resp, body = authRequest(t, app, fiber.MethodPost, "/auth/register", adminToken, map[string]any{
		"username": "budi",
		"name":     "Budi Kedua",
		"password": "sandi",
	})
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	require.Equal(t, "Username sudah digunakan", body["error"])

	// Kasir tidak boleh membuat user baru
	kasirToken := login(t, app, "budi", "sandi-budi")
	resp, body = authRequest(t, app, fiber.MethodPost, "/auth/register", kasirToken, map[string]any{
		"username": "lina",
		"name":     "Lina",
		"password": "sandi-lina",
	})
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	require.Equal(t, "Anda tidak punya akses untuk operasi ini", body["error"])
}
