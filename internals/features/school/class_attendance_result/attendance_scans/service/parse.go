package service

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"presensiku_backend/internals/helpers/rollno"

	"github.com/bytedance/sonic"
)

// key yang dikenali untuk daftar nomor absen satu jam
var rollKeys = []string{"roll_numbers", "rollNumbers", "absent", "absentees"}

/*
ParseScanResponse membaca balasan layanan scan. Bentuk yang diterima:

	{"roll_numbers": "1, 2, 5"}
	{"roll_numbers": ["1", 2, "5"]}
	{"periods": {"1": ["3"], "2": "4,7"}}
	{"1": ["3"], "2": "4,7"}
	{"data": {...salah satu di atas...}}
	1, 2, 5   (teks polos)

Isinya tidak dipercaya: hanya dipecah di sini, normalisasi dan filter roster
dilakukan sesi entri.
*/
func ParseScanResponse(body []byte, mode Mode) (Result, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return Result{}, fmt.Errorf("%w: balasan kosong", ErrBadResponse)
	}

	if body[0] != '{' && body[0] != '[' && body[0] != '"' {
		return finalize(Result{Rolls: rollno.SplitBulk(string(body))}, mode)
	}

	var raw any
	if err := sonic.Unmarshal(body, &raw); err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrBadResponse, err)
	}
	res, err := fromValue(raw, 0)
	if err != nil {
		return Result{}, err
	}
	return finalize(res, mode)
}

func fromValue(v any, depth int) (Result, error) {
	switch t := v.(type) {
	case string, []any:
		return Result{Rolls: toRolls(t)}, nil
	case map[string]any:
		if depth < 2 {
			if inner, ok := t["data"]; ok {
				return fromValue(inner, depth+1)
			}
		}
		for _, k := range rollKeys {
			if r, ok := t[k]; ok {
				return Result{Rolls: toRolls(r)}, nil
			}
		}
		if p, ok := t["periods"]; ok {
			pm, ok := p.(map[string]any)
			if !ok {
				return Result{}, fmt.Errorf("%w: periods harus object", ErrBadResponse)
			}
			return pagesFrom(pm)
		}
		// object langsung {nomorJam: daftar}
		if len(t) > 0 && allPeriodKeys(t) {
			return pagesFrom(t)
		}
	}
	return Result{}, fmt.Errorf("%w: format tidak dikenali", ErrBadResponse)
}

func pagesFrom(m map[string]any) (Result, error) {
	pages := make(map[int][]string, len(m))
	for k, v := range m {
		n, ok := periodNum(k)
		if !ok {
			continue
		}
		if _, seen := pages[n]; !seen {
			pages[n] = []string{}
		}
		pages[n] = append(pages[n], toRolls(v)...)
	}
	return Result{Pages: pages}, nil
}

func allPeriodKeys(m map[string]any) bool {
	for k := range m {
		if _, ok := periodNum(k); !ok {
			return false
		}
	}
	return true
}

// periodNum: "1", "P1", "period 2", "jam3" → angka
func periodNum(k string) (int, bool) {
	k = strings.TrimSpace(strings.ToLower(k))
	for _, prefix := range []string{"period", "jam", "p"} {
		k = strings.TrimSpace(strings.TrimPrefix(k, prefix))
	}
	k = strings.TrimLeft(k, "-_ ")
	n, err := strconv.Atoi(k)
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

func toRolls(v any) []string {
	switch t := v.(type) {
	case string:
		return rollno.SplitBulk(t)
	case float64:
		return []string{strconv.FormatFloat(t, 'f', -1, 64)}
	case []any:
		out := make([]string, 0, len(t))
		for _, item := range t {
			out = append(out, toRolls(item)...)
		}
		return out
	}
	return nil
}

// finalize menyesuaikan hasil dengan mode yang diminta
func finalize(res Result, mode Mode) (Result, error) {
	switch mode {
	case ModePage:
		if res.Pages == nil {
			return Result{}, fmt.Errorf("%w: scan halaman tidak memuat nomor jam", ErrBadResponse)
		}
	default:
		if res.Pages != nil {
			if len(res.Pages) != 1 {
				return Result{}, fmt.Errorf("%w: scan satu jam memuat %d jam", ErrBadResponse, len(res.Pages))
			}
			for _, rolls := range res.Pages {
				res = Result{Rolls: rolls}
			}
		}
		if res.Rolls == nil {
			res.Rolls = []string{}
		}
	}
	return res, nil
}
