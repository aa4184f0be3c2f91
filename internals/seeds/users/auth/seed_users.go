package user

import (
	"encoding/json"
	"errors"
	"log"
	"os"
	"strings"

	"presensiku_backend/internals/constants"
	authRepo "presensiku_backend/internals/features/users/auth/repository"
	authService "presensiku_backend/internals/features/users/auth/service"
	"presensiku_backend/internals/features/users/users/model"

	"gorm.io/gorm"
)

type AdminSeed struct {
	UserName string `json:"user_name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SeedAdminFromEnv: admin pertama dari SEED_ADMIN_EMAIL / SEED_ADMIN_PASSWORD
func SeedAdminFromEnv(db *gorm.DB) {
	email := strings.TrimSpace(os.Getenv("SEED_ADMIN_EMAIL"))
	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if email == "" || password == "" {
		log.Println("ℹ️ SEED_ADMIN_EMAIL / SEED_ADMIN_PASSWORD kosong, seed admin dilewati.")
		return
	}
	name := strings.TrimSpace(os.Getenv("SEED_ADMIN_NAME"))
	if name == "" {
		name = "Admin"
	}
	seedAdmin(db, AdminSeed{UserName: name, Email: email, Password: password})
}

func SeedAdminsFromJSON(db *gorm.DB, filePath string) {
	log.Println("📥 Membaca file admin:", filePath)

	file, err := os.ReadFile(filePath)
	if err != nil {
		log.Printf("❌ Gagal membaca file JSON: %v", err)
		return
	}

	var inputs []AdminSeed
	if err := json.Unmarshal(file, &inputs); err != nil {
		log.Printf("❌ Gagal decode JSON: %v", err)
		return
	}
	for _, data := range inputs {
		seedAdmin(db, data)
	}
}

func seedAdmin(db *gorm.DB, data AdminSeed) {
	email := strings.ToLower(strings.TrimSpace(data.Email))
	if _, err := authRepo.FindAdminByEmail(db, email); err == nil {
		log.Printf("ℹ️ Admin dengan email '%s' sudah ada, dilewati.", email)
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("❌ Gagal cek admin '%s': %v", email, err)
		return
	}

	// 🔐 Hash password sebelum disimpan
	hashedPassword, err := authService.HashPassword(data.Password)
	if err != nil {
		log.Printf("❌ Gagal hash password untuk '%s': %v", email, err)
		return
	}

	newUser := model.UserModel{
		UserName: data.UserName,
		Email:    &email,
		Password: hashedPassword,
		Role:     constants.RoleAdmin,
		IsActive: true,
	}
	if err := authRepo.CreateUser(db, &newUser); err != nil {
		log.Printf("❌ Gagal insert admin '%s': %v", email, err)
	} else {
		log.Printf("✅ Berhasil insert admin '%s'", email)
	}
}
