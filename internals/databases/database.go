package database

import (
	"fmt"
	"log"
	"os"
	"time"

	"presensiku_backend/internals/configs"
	annModel "presensiku_backend/internals/features/school/announcements/announcement/model"
	attendanceModel "presensiku_backend/internals/features/school/class_attendance_result/attendance_records/model"
	classModel "presensiku_backend/internals/features/school/classes/classes/model"
	authModel "presensiku_backend/internals/features/users/auth/model"
	userModel "presensiku_backend/internals/features/users/users/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func ConnectDB() {
	log.Println("🔌 Koneksi ke PostgreSQL...")

	sslmode := getenv("DB_SSLMODE", "require")
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&application_name=presensiku&options=-c statement_timeout=5000",
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_HOST"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_NAME"),
		sslmode,
	)

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true, // 👍 cocok untuk PgBouncer (transaction pooling)
	}), &gorm.Config{
		Logger: configs.NewGormLogger(),
	})
	if err != nil {
		log.Fatalf("❌ Gagal konek DB: %v", err)
	}
	DB = db
	log.Println("✅ DB connected.")
}

// Models: semua tabel yang dikelola AutoMigrate
func Models() []any {
	return []any{
		&classModel.ClassModel{},
		&classModel.ClassSubjectModel{},
		&attendanceModel.AttendanceDayModel{},
		&attendanceModel.AttendancePeriodModel{},
		&annModel.AnnouncementModel{},
		&userModel.UserModel{},
		&authModel.TokenBlacklistModel{},
	}
}

// AutoMigrate dijalankan kalau DB_AUTO_MIGRATE=true
func AutoMigrate() error {
	if getenv("DB_AUTO_MIGRATE", "false") != "true" {
		log.Println("[INFO] DB_AUTO_MIGRATE nonaktif, skip migrasi")
		return nil
	}
	if err := DB.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto`).Error; err != nil {
		log.Printf("[WARN] create extension pgcrypto: %v", err)
	}
	if err := DB.AutoMigrate(Models()...); err != nil {
		return err
	}
	log.Println("✅ AutoMigrate selesai.")
	return nil
}

func TunePool() {
	sqlDB, err := DB.DB()
	if err != nil {
		log.Printf("pool tune err: %v", err)
		return
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxIdleTime(60 * time.Second)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)
}

func WarmUpQueries() {
	go func() {
		time.Sleep(500 * time.Millisecond) // beri waktu server naik
		if err := ping(); err != nil {
			log.Printf("warm-up ping err: %v", err)
		}
	}()
}

func ping() error {
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

func Close() {
	if DB == nil {
		return
	}
	if sqlDB, err := DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
