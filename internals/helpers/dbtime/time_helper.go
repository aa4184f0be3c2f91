// file: internals/helpers/dbtime/time_helper.go
package dbtime

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Format tanggal yang dipakai di URL & payload absensi
const DateLayout = "2006-01-02"

// SchoolLocation: timezone sekolah dari env SCHOOL_TIMEZONE.
// Fallback Asia/Jakarta, lalu UTC.
func SchoolLocation() *time.Location {
	if tz := strings.TrimSpace(os.Getenv("SCHOOL_TIMEZONE")); tz != "" {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}
	if loc, err := time.LoadLocation("Asia/Jakarta"); err == nil {
		return loc
	}
	return time.UTC
}

// ParseDate: "YYYY-MM-DD" → time.Time (00:00 UTC). Kolom DB bertipe date,
// jadi jam & zona dibuang.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("tanggal harus format YYYY-MM-DD: %q", s)
	}
	return t, nil
}

func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}

// Hari ini di timezone sekolah
func Today() string {
	return time.Now().In(SchoolLocation()).Format(DateLayout)
}
