// Package rollno menormalisasi nomor absen (roll number) siswa.
//
// Semua input (ketikan admin, hasil scan AI, payload client) lewat sini
// sebelum disimpan: NFKC, trim spasi & tanda kutip, buang yang kosong,
// filter ke roster kelas, dedupe, lalu urut natural ("2" < "10").
package rollno

import (
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
)

const quoteChars = "'\"`‘’“”"

// Set roster kelas (allowedRollSet)
type Set map[string]struct{}

func NewSet(rolls []string) Set {
	s := make(Set, len(rolls))
	for _, r := range rolls {
		if n := Normalize(r); n != "" {
			s[n] = struct{}{}
		}
	}
	return s
}

func (s Set) Has(roll string) bool {
	_, ok := s[roll]
	return ok
}

// Sorted: isi set, urut natural
func (s Set) Sorted() []string {
	out := make([]string, 0, len(s))
	for r := range s {
		out = append(out, r)
	}
	SortNatural(out)
	return out
}

// Normalize satu token. Hasil "" berarti token dibuang.
func Normalize(raw string) string {
	s := norm.NFKC.String(raw)
	s = strings.TrimSpace(s)
	s = strings.Trim(s, quoteChars)
	return strings.TrimSpace(s)
}

// NormalizeSet: normalize + dedupe + urut natural.
// allowed == nil → tanpa filter roster (dipakai saat menyimpan roster itu sendiri).
func NormalizeSet(rolls []string, allowed Set) []string {
	seen := make(map[string]struct{}, len(rolls))
	out := make([]string, 0, len(rolls))
	for _, r := range rolls {
		n := Normalize(r)
		if n == "" {
			continue
		}
		if allowed != nil && !allowed.Has(n) {
			continue
		}
		if _, dup := seen[n]; dup {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	SortNatural(out)
	return out
}

// SplitBulk memecah teks bulk pada koma & baris baru.
func SplitBulk(raw string) []string {
	return strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == '\n' || r == '\r'
	})
}

// ParseBulk = SplitBulk + NormalizeSet
func ParseBulk(raw string, allowed Set) []string {
	return NormalizeSet(SplitBulk(raw), allowed)
}

// Join untuk tampilan bulk-edit di client
func Join(rolls []string) string {
	return strings.Join(rolls, ", ")
}

// SequentialRoster: roster "1".."n" untuk kelas yang hanya punya total siswa
func SequentialRoster(n int) []string {
	if n <= 0 {
		return nil
	}
	out := make([]string, n)
	for i := range out {
		out[i] = strconv.Itoa(i + 1)
	}
	return out
}

func SortNatural(rolls []string) {
	sort.SliceStable(rolls, func(i, j int) bool { return Less(rolls[i], rolls[j]) })
}

func Less(a, b string) bool { return Compare(a, b) < 0 }

// Compare: urutan natural, blok digit dibandingkan sebagai angka.
func Compare(a, b string) int {
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		if isDigit(a[i]) && isDigit(b[j]) {
			si := i
			for i < len(a) && isDigit(a[i]) {
				i++
			}
			sj := j
			for j < len(b) && isDigit(b[j]) {
				j++
			}
			na := strings.TrimLeft(a[si:i], "0")
			nb := strings.TrimLeft(b[sj:j], "0")
			if len(na) != len(nb) {
				return cmpInt(len(na), len(nb))
			}
			if c := strings.Compare(na, nb); c != 0 {
				return c
			}
			continue
		}
		ca, cb := lower(a[i]), lower(b[j])
		if ca != cb {
			return cmpInt(int(ca), int(cb))
		}
		i++
		j++
	}
	if c := cmpInt(len(a)-i, len(b)-j); c != 0 {
		return c
	}
	// "05" vs "5": tetap deterministik
	return strings.Compare(a, b)
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func lower(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
