package scheduler

import (
	"log"
	"time"

	authRepo "presensiku_backend/internals/features/users/auth/repository"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// RegisterBlacklistCleanup: hapus token_blacklist yang exp-nya lewat lebih dari `grace`.
// Default dijalankan tiap hari jam 03:00.
func RegisterBlacklistCleanup(c *cron.Cron, db *gorm.DB, spec string, grace time.Duration) error {
	if spec == "" {
		spec = "0 3 * * *"
	}
	_, err := c.AddFunc(spec, func() {
		RunBlacklistCleanup(db, time.Now(), grace)
	})
	return err
}

func RunBlacklistCleanup(db *gorm.DB, now time.Time, grace time.Duration) {
	log.Println("[CLEANUP] Menjalankan pembersihan token_blacklist...")

	n, err := authRepo.CleanupExpiredBlacklist(db, now.Add(-grace))
	switch {
	case err != nil:
		log.Printf("[CLEANUP ERROR] Gagal hapus token: %v", err)
	case n > 0:
		log.Printf("[CLEANUP] %d token kadaluarsa dihapus", n)
	default:
		log.Println("[CLEANUP] Tidak ada token yang memenuhi syarat dihapus")
	}
}
