package service

import (
	"sort"
	"strings"

	"presensiku_backend/internals/helpers/rollno"

	"github.com/google/uuid"
)

// DayPeriod: satu jam pelajaran yang sudah tersimpan
type DayPeriod struct {
	PeriodNum         int
	SubjectID         uuid.UUID
	SubjectName       string
	AbsentRollNumbers []string
}

// Day: rekap presensi satu tanggal untuk satu kelas
type Day struct {
	Date    string
	Periods []DayPeriod
}

// Overall: total lintas mapel
type Overall struct {
	Attended int
	Total    int
}

func (o Overall) Percentage() float64 { return Percentage(o.Attended, o.Total) }

// AggregateStudent melipat semua hari tersimpan menjadi attended/total per mapel
// untuk satu nomor absen. Hadir = nomor absen tidak ada di daftar absen periode itu.
func AggregateStudent(days []Day, roll string) []SubjectAttendance {
	roll = rollno.Normalize(roll)
	bySubject := map[uuid.UUID]*SubjectAttendance{}
	order := make([]uuid.UUID, 0)

	for _, d := range days {
		for _, p := range d.Periods {
			rec, ok := bySubject[p.SubjectID]
			if !ok {
				rec = &SubjectAttendance{SubjectID: p.SubjectID, SubjectName: p.SubjectName}
				bySubject[p.SubjectID] = rec
				order = append(order, p.SubjectID)
			}
			// nama terbaru menang (mapel bisa di-rename)
			if p.SubjectName != "" {
				rec.SubjectName = p.SubjectName
			}
			rec.Total++
			if !containsRoll(p.AbsentRollNumbers, roll) {
				rec.Attended++
			}
		}
	}

	out := make([]SubjectAttendance, 0, len(order))
	for _, id := range order {
		out = append(out, *bySubject[id])
	}
	sortSubjects(out)
	return out
}

// urut nama mapel (case-insensitive)
func sortSubjects(list []SubjectAttendance) {
	sort.SliceStable(list, func(i, j int) bool {
		return strings.ToLower(list[i].SubjectName) < strings.ToLower(list[j].SubjectName)
	})
}

// AggregateClass: overall per nomor absen untuk seluruh roster
func AggregateClass(days []Day, roster []string) map[string]Overall {
	out := make(map[string]Overall, len(roster))
	for _, r := range roster {
		if n := rollno.Normalize(r); n != "" {
			out[n] = Overall{}
		}
	}
	for _, d := range days {
		for _, p := range d.Periods {
			absent := rollno.NewSet(p.AbsentRollNumbers)
			for roll, o := range out {
				o.Total++
				if !absent.Has(roll) {
					o.Attended++
				}
				out[roll] = o
			}
		}
	}
	return out
}

// SumOverall menjumlahkan attended/total semua mapel
func SumOverall(subjects []SubjectAttendance) Overall {
	var o Overall
	for _, s := range subjects {
		o.Attended += s.Attended
		o.Total += s.Total
	}
	return o
}

func containsRoll(list []string, roll string) bool {
	for _, r := range list {
		if rollno.Normalize(r) == roll {
			return true
		}
	}
	return false
}
