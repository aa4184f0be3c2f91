// file: internals/features/school/class_attendance_result/attendance_reports/service/projection.go
package service

import (
	"math"

	"github.com/google/uuid"
)

// Zona "aman": minimal ambang + 5 poin
const SafeMargin = 5.0

// SubjectAttendance: snapshot attended/total satu mapel untuk satu siswa
type SubjectAttendance struct {
	SubjectID   uuid.UUID
	SubjectName string
	Attended    int
	Total       int
}

func (r SubjectAttendance) Percentage() float64 { return Percentage(r.Attended, r.Total) }

// Percentage: 100·attended/total, 100 kalau belum ada pertemuan
func Percentage(attended, total int) float64 {
	if total <= 0 {
		return 100
	}
	return 100 * float64(attended) / float64(total)
}

// Impact: hasil proyeksi "kalau bolos N kali lagi"
type Impact struct {
	SkipCount       int
	AfterTotal      int
	AfterAttended   int
	AfterPercentage float64
	PercentDrop     float64
	IsDanger        bool
	IsSafe          bool

	// MaxBunkable = -1 kalau BunkUnlimited (ambang 0)
	MaxBunkable   int
	BunkUnlimited bool

	// Hanya terisi kalau AfterPercentage < ambang
	ClassesToRecover int
	Recoverable      bool
}

// ProjectImpact menghitung dampak skipCount absen tambahan terhadap persentase.
// Murni, tanpa pembulatan.
func ProjectImpact(rec SubjectAttendance, skipCount int, minPercentage float64) Impact {
	if skipCount < 0 {
		skipCount = 0
	}
	afterTotal := rec.Total + skipCount
	afterAttended := rec.Attended
	after := Percentage(afterAttended, afterTotal)

	out := Impact{
		SkipCount:       skipCount,
		AfterTotal:      afterTotal,
		AfterAttended:   afterAttended,
		AfterPercentage: after,
		PercentDrop:     rec.Percentage() - after,
		IsDanger:        after < minPercentage,
		IsSafe:          after >= minPercentage+SafeMargin,
		Recoverable:     true,
	}

	out.MaxBunkable, out.BunkUnlimited = MaxBunkable(rec.Attended, rec.Total, minPercentage)

	if after < minPercentage {
		out.ClassesToRecover, out.Recoverable = ClassesToRecover(afterAttended, afterTotal, minPercentage)
	}
	return out
}

// MaxBunkable: skip terbesar yang masih menjaga persentase >= ambang.
// Closed form floor(attended/(min/100) − total), lalu dicocokkan ulang dengan
// predikat yang sama dengan ProjectImpact supaya tidak meleset karena float.
func MaxBunkable(attended, total int, minPercentage float64) (int, bool) {
	if minPercentage <= 0 {
		return -1, true
	}
	ok := func(skip int) bool {
		return Percentage(attended, total+skip) >= minPercentage
	}

	est := int(math.Floor(float64(attended)/(minPercentage/100) - float64(total)))
	if est < 0 {
		return 0, false
	}
	for est > 0 && !ok(est) {
		est--
	}
	for ok(est + 1) {
		est++
	}
	return est, false
}

// ClassesToRecover: jumlah minimal pertemuan berturut-turut yang harus dihadiri
// supaya (attended+x)/(total+x) >= ambang.
// Ambang 100 tidak bisa dipulihkan setelah ada satu absen → (0, false).
func ClassesToRecover(attended, total int, minPercentage float64) (int, bool) {
	if Percentage(attended, total) >= minPercentage {
		return 0, true
	}
	if minPercentage >= 100 {
		return 0, false
	}
	ok := func(x int) bool {
		return Percentage(attended+x, total+x) >= minPercentage
	}

	r := minPercentage / 100
	x := int(math.Ceil((r*float64(total) - float64(attended)) / (1 - r)))
	if x < 0 {
		x = 0
	}
	for x > 0 && ok(x-1) {
		x--
	}
	for !ok(x) {
		x++
	}
	return x, true
}

// Round1: pembulatan 1 desimal, hanya untuk tampilan
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}
