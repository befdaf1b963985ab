package main

import (
	"context"
	"log"
	"strings"
	"time"

	"kantin-backend/internal/audit"
	"kantin-backend/internal/auth"
	"kantin-backend/internal/cart"
	"kantin-backend/internal/catalog"
	"kantin-backend/internal/checkout"
	"kantin-backend/internal/config"
	"kantin-backend/internal/database"
	"kantin-backend/internal/models"
	"kantin-backend/internal/receipt"
	"kantin-backend/internal/report"
	"kantin-backend/internal/scanner"
	"kantin-backend/internal/settings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg := config.Load()
	database.Init(cfg)
	db := database.DB

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			log.Println("Error tidak terduga:", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Terjadi kesalahan pada server",
			})
		},
	})

	// CORS origins dari string dipisah koma
	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	// Keranjang: Redis kalau dikonfigurasi, kalau tidak di memori proses
	var cartStore cart.Store
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		err := client.Ping(ctx).Err()
		cancel()
		if err != nil {
			log.Printf("[WARN] Redis tidak tersedia di %s (%v), keranjang disimpan di memori", cfg.RedisAddr, err)
			cartStore = cart.NewMemoryStore()
		} else {
			cartStore = cart.NewRedisStore(client, "kantin:")
		}
	} else {
		cartStore = cart.NewMemoryStore()
	}

	checkoutSvc := checkout.NewService(db)
	scanMgr := scanner.NewManager(scanner.DefaultCooldown, 15*time.Minute)

	api := app.Group("/api")

	// Auth publik
	api.Post("/auth/register-admin", auth.RegisterAdminHandler(db))
	api.Post("/auth/login", auth.LoginHandler(cfg, db))

	// Semua route lain butuh token
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg))

	protected.Get("/auth/me", auth.MeHandler(db))

	// Route khusus admin
	adminRoutes := protected.Group("")
	adminRoutes.Use(auth.RequireRole(models.RoleAdmin))

	adminRoutes.Post("/auth/register", auth.RegisterUserHandler(db))
	adminRoutes.Post("/products", catalog.CreateProductHandler(db))
	adminRoutes.Put("/products", catalog.UpdateProductHandler(db))
	adminRoutes.Delete("/products", catalog.DeleteProductHandler(db))
	adminRoutes.Put("/settings/print", settings.UpdatePrintSettingHandler(db))
	adminRoutes.Get("/audit-logs", audit.ListAuditLogsHandler(db))

	// Katalog & barcode
	protected.Get("/products", catalog.ListProductsHandler(db))
	protected.Post("/barcode", catalog.ScanBarcodeHandler(db))

	// Transaksi
	protected.Get("/transactions", checkout.ListTransactionsHandler(db))
	protected.Post("/transactions", checkout.CreateTransactionHandler(checkoutSvc, db))
	protected.Post("/transactions/batch", checkout.BatchCheckoutHandler(checkoutSvc, db))

	// Keranjang
	protected.Get("/cart", cart.GetCartHandler(cartStore))
	protected.Post("/cart/items", cart.AddItemHandler(db, cartStore))
	protected.Put("/cart/items/:barcode", cart.UpdateItemHandler(cartStore))
	protected.Delete("/cart", cart.ClearCartHandler(cartStore))
	protected.Post("/cart/checkout", cart.CheckoutCartHandler(checkoutSvc, db, cartStore))

	// Sesi scan kamera
	protected.Post("/scan/sessions", scanner.CreateSessionHandler(scanMgr))
	protected.Post("/scan/sessions/:id/events", scanner.ScanEventHandler(scanMgr, db, cartStore))
	protected.Delete("/scan/sessions/:id", scanner.StopSessionHandler(scanMgr))
	protected.Get("/scan/camera-help", scanner.CameraHelpHandler())

	// Struk
	protected.Get("/transactions/:id/receipt", receipt.TransactionReceiptHandler(db))
	protected.Get("/receipts", receipt.CombinedReceiptHandler(db))

	// Laporan & dashboard
	protected.Get("/reports/summary", report.SummaryHandler(db))
	protected.Get("/reports/export", report.ExportCSVHandler(db))
	protected.Get("/dashboard/stats", report.DashboardStatsHandler(db))

	// Pengaturan cetak (kasir juga boleh baca)
	protected.Get("/settings/print", settings.GetPrintSettingHandler(db))

	log.Println("Server berjalan di port:", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}
