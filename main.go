package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"
	"github.com/gofiber/utils"
	"github.com/robfig/cron/v3"

	"presensiku_backend/internals/configs"
	database "presensiku_backend/internals/databases"
	scanSvc "presensiku_backend/internals/features/school/class_attendance_result/attendance_scans/service"
	sessionSvc "presensiku_backend/internals/features/school/class_attendance_result/attendance_sessions/service"
	scheduler "presensiku_backend/internals/features/users/auth/scheduler"
	middlewares "presensiku_backend/internals/middlewares"
	routes "presensiku_backend/internals/route"
	routeDetails "presensiku_backend/internals/route/details"
	"presensiku_backend/internals/seeds"
)

func main() {
	configs.LoadEnv()

	requestTimeout := configs.GetEnvDuration("REQUEST_TIMEOUT", 5*time.Second)

	app := fiber.New(fiber.Config{
		// 🚀 JSON super cepat
		JSONEncoder:             sonic.Marshal,
		JSONDecoder:             sonic.Unmarshal,
		DisableStartupMessage:   true,
		BodyLimit:               int(scanSvc.MaxUploadBytes) + 1<<20, // foto logbook + form
		ProxyHeader:             fiber.HeaderXForwardedFor,
		EnableTrustedProxyCheck: true,
		TrustedProxies:          []string{"0.0.0.0/0"},
	})

	// ⚙️ middleware dasar + performa
	app.Use(compress.New(compress.Config{Level: compress.LevelDefault})) // gzip
	app.Use(etag.New())                                                  // 304 caching

	// 🔎 Request-ID + timing (observability ringan)
	app.Use(func(c *fiber.Ctx) error {
		id := c.Get("X-Request-ID")
		if id == "" {
			id = utils.UUID()
		}
		c.Set("X-Request-ID", id)
		c.Locals("requestid", id)
		start := time.Now()
		// HTTP timeout guard (selaras dengan statement_timeout di DB); scan punya timeout sendiri
		ctx, cancel := context.WithTimeout(c.Context(), requestTimeout)
		defer cancel()
		c.SetUserContext(ctx)
		err := c.Next()
		log.Printf("[REQ] id=%s %s %s status=%d dur=%s", id, c.Method(), c.OriginalURL(), c.Response().StatusCode(), time.Since(start))
		return err
	})

	middlewares.SetupMiddlewares(app)

	// 🔌 DB connect + pool + warm-up
	database.ConnectDB()
	database.TunePool()
	if err := database.AutoMigrate(); err != nil {
		log.Fatalf("❌ AutoMigrate gagal: %v", err)
	}
	database.WarmUpQueries()

	if configs.GetEnv("RUN_SEEDS") == "true" {
		seeds.RunAllSeeds(database.DB)
	}

	// 🧠 Sesi input presensi (in-memory per admin × kelas)
	sessions := sessionSvc.NewManager(sessionSvc.NewGormStore(database.DB), configs.RelockAfter)
	var scanner scanSvc.Scanner
	if configs.ScanServiceURL != "" {
		scanner = scanSvc.NewHTTPScanner(configs.ScanServiceURL, configs.ScanServiceKey, configs.ScanTimeout)
	}

	// ⏱ scheduler setelah DB siap
	jobs := cron.New()
	if err := scheduler.RegisterBlacklistCleanup(jobs, database.DB, configs.GetEnv("BLACKLIST_CLEANUP_CRON"), configs.BlacklistGrace); err != nil {
		log.Fatalf("❌ Gagal daftar cron blacklist: %v", err)
	}
	if err := sessions.RegisterSweep(jobs, "@every 10m", configs.SessionIdleTTL); err != nil {
		log.Fatalf("❌ Gagal daftar cron sweep sesi: %v", err)
	}
	jobs.Start()

	// ✅ Routes
	routes.SetupRoutes(app, database.DB, routeDetails.SessionDeps{
		Sessions:    sessions,
		Scanner:     scanner,
		ScanTimeout: configs.ScanTimeout,
	})

	// 🔒 Keep-Alive & timeout koneksi server (scan bisa lama)
	writeTimeout := 30 * time.Second
	if t := configs.ScanTimeout + 15*time.Second; t > writeTimeout {
		writeTimeout = t
	}
	app.Server().ReadTimeout = 30 * time.Second
	app.Server().WriteTimeout = writeTimeout
	app.Server().IdleTimeout = 90 * time.Second

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}

	// Start server non-blocking
	go func() {
		log.Printf("✅ Listening on :%s", port)
		if err := app.Listen("0.0.0.0:" + port); err != nil {
			log.Fatalf("server error: %v", err)
		}
	}()

	// graceful shutdown: server → cron → sesi → pool DB
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = app.ShutdownWithContext(ctx)

	<-jobs.Stop().Done()
	sessions.CloseAll()
	database.Close()
	log.Println("👋 Server berhenti.")
}
