package seeds

import (
	"os"

	classes "presensiku_backend/internals/seeds/classes"
	users "presensiku_backend/internals/seeds/users/auth"

	"gorm.io/gorm"
)

func RunAllSeeds(db *gorm.DB) {
	//* User
	users.SeedAdminFromEnv(db)
	if path := os.Getenv("SEED_ADMINS_FILE"); path != "" {
		users.SeedAdminsFromJSON(db, path)
	}

	//* Kelas contoh
	classes.SeedClassesFromJSON(db, "internals/seeds/classes/data_classes.json")
}
