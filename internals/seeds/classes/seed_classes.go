package classes

import (
	"encoding/json"
	"log"
	"os"
	"strings"

	"presensiku_backend/internals/features/school/classes/classes/model"
	"presensiku_backend/internals/helpers/rollno"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

type ClassSeed struct {
	ClassName     string   `json:"class_name"`
	TotalStudents int      `json:"total_students"`
	RollNumbers   []string `json:"roll_numbers"`
	MinPercentage float64  `json:"min_attendance_percentage"`
	Subjects      []string `json:"subjects"`
}

// SeedClassesFromJSON: kelas + mapel contoh, dilewati kalau nama kelas sudah ada
func SeedClassesFromJSON(db *gorm.DB, filePath string) {
	log.Println("📥 Membaca file kelas:", filePath)

	file, err := os.ReadFile(filePath)
	if err != nil {
		log.Printf("❌ Gagal membaca file JSON: %v", err)
		return
	}
	var inputs []ClassSeed
	if err := json.Unmarshal(file, &inputs); err != nil {
		log.Printf("❌ Gagal decode JSON: %v", err)
		return
	}

	for _, data := range inputs {
		name := strings.TrimSpace(data.ClassName)
		var n int64
		if err := db.Model(&model.ClassModel{}).Where("class_name = ?", name).Count(&n).Error; err != nil {
			log.Printf("❌ Gagal cek kelas '%s': %v", name, err)
			continue
		}
		if n > 0 {
			log.Printf("ℹ️ Kelas '%s' sudah ada, dilewati.", name)
			continue
		}

		minPct := data.MinPercentage
		if minPct <= 0 || minPct > 100 {
			minPct = 75
		}
		class := model.ClassModel{
			ClassName:                    name,
			ClassTotalStudents:           data.TotalStudents,
			ClassRollNumbers:             pq.StringArray(rollno.NormalizeSet(data.RollNumbers, nil)),
			ClassMinAttendancePercentage: minPct,
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&class).Error; err != nil {
				return err
			}
			for _, s := range data.Subjects {
				if s = strings.TrimSpace(s); s == "" {
					continue
				}
				if err := tx.Create(&model.ClassSubjectModel{
					ClassSubjectClassID: class.ClassID,
					ClassSubjectName:    s,
				}).Error; err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			log.Printf("❌ Gagal insert kelas '%s': %v", name, err)
			continue
		}
		log.Printf("✅ Berhasil insert kelas '%s' (%d mapel)", name, len(data.Subjects))
	}
}
