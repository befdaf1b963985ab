package settings

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"kantin-backend/internal/database"
	"kantin-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newSettingsApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{"error": e.Message})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		},
	})
	app.Get("/settings/print", GetPrintSettingHandler(db))
	app.Put("/settings/print", UpdatePrintSettingHandler(db))

	return app, db
}

func settingsRequest(t *testing.T, app *fiber.App, method string, body any) (*http.Response, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, "/settings/print", reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
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

func TestGetPrintSetting_CreatesDefault(t *testing.T) {
	app, db := newSettingsApp(t)

	resp, body := settingsRequest(t, app, fiber.MethodGet, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Equal(t, "KANTIN SEKOLAH", body["store_name"])
	require.Equal(t, "58mm", body["paper_width"])
	require.Equal(t, true, body["show_logo"])
	require.Equal(t, false, body["auto_print"])

	// GET berikutnya memakai baris yang sama
	settingsRequest(t, app, fiber.MethodGet, nil)
	var count int64
	db.Model(&models.PrintSetting{}).Count(&count)
	require.EqualValues(t, 1, count)
}

func TestUpdatePrintSetting_Partial(t *testing.T) {
	app, db := newSettingsApp(t)

	resp, body := settingsRequest(t, app, fiber.MethodPut, map[string]any{
		"store_name":  "Kantin SMA 1",
		"paper_width": "80mm",
		"show_kasir":  false,
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Equal(t, "Kantin SMA 1", body["store_name"])
	require.Equal(t, "80mm", body["paper_width"])
	require.Equal(t, false, body["show_kasir"])
	// Field yang tidak dikirim tetap default
	require.Equal(t, "Jl. Pendidikan No. 123", body["store_address"])

	var count int64
	db.Model(&models.AuditLog{}).Where("entity_type = ?", "print_setting").Count(&count)
	require.EqualValues(t, 1, count)
}

func TestUpdatePrintSetting_Validation(t *testing.T) {
	app, _ := newSettingsApp(t)

	resp, body := settingsRequest(t, app, fiber.MethodPut, map[string]any{"paper_width": "60mm"})
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	require.Equal(t, "Lebar kertas harus 58mm atau 80mm", body["error"])

	resp, body = settingsRequest(t, app, fiber.MethodPut, map[string]any{"store_name": "   "})
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	require.Equal(t, "Nama toko tidak boleh kosong", body["error"])
}
