// Package validators holds stateless check-digit validators for Brazilian
// documents and the route code format.
package validators

import (
	"regexp"
	"strings"
	"time"
)

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func allSame(s string) bool {
	return strings.Count(s, s[:1]) == len(s)
}

// CPF validates an individual taxpayer number, with or without punctuation.
func CPF(value string) bool {
	d := digitsOnly(value)
	if len(d) != 11 || allSame(d) {
		return false
	}
	for pos := 9; pos <= 10; pos++ {
		sum := 0
		for i := 0; i < pos; i++ {
			sum += int(d[i]-'0') * (pos + 1 - i)
		}
		check := sum * 10 % 11
		if check == 10 {
			check = 0
		}
		if check != int(d[pos]-'0') {
			return false
		}
	}
	return true
}

// CNPJ validates a company taxpayer number, with or without punctuation.
func CNPJ(value string) bool {
	d := digitsOnly(value)
	if len(d) != 14 || allSame(d) {
		return false
	}
	weights := []int{6, 5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
	for pos := 12; pos <= 13; pos++ {
		w := weights[13-pos:]
		sum := 0
		for i := 0; i < pos; i++ {
			sum += int(d[i]-'0') * w[i]
		}
		check := sum % 11
		if check < 2 {
			check = 0
		} else {
			check = 11 - check
		}
		if check != int(d[pos]-'0') {
			return false
		}
	}
	return true
}

// CNH validates a driver license registration number.
func CNH(value string) bool {
	d := digitsOnly(value)
	if len(d) != 11 || allSame(d) {
		return false
	}

	sum := 0
	for i, w := 0, 9; i < 9; i, w = i+1, w-1 {
		sum += int(d[i]-'0') * w
	}
	dv1 := sum % 11
	dsc := 0
	if dv1 >= 10 {
		dv1 = 0
		dsc = 2
	}

	sum = 0
	for i, w := 0, 1; i < 9; i, w = i+1, w+1 {
		sum += int(d[i]-'0') * w
	}
	dv2 := sum % 11
	if dv2 >= 10 {
		dv2 = 0
	} else {
		dv2 -= dsc
	}

	return int(d[9]-'0') == dv1 && int(d[10]-'0') == dv2
}

// TaxDocument accepts either a CPF or a CNPJ.
func TaxDocument(value string) bool {
	return CPF(value) || CNPJ(value)
}

var routeCodeRe = regexp.MustCompile(`^RT-(\d{8})-(\d{3})$`)

// RouteCode checks the RT-YYYYMMDD-NNN format including a real calendar date.
func RouteCode(code string) bool {
	m := routeCodeRe.FindStringSubmatch(code)
	if m == nil {
		return false
	}
	if _, err := time.Parse("20060102", m[1]); err != nil {
		return false
	}
	return m[2] != "000"
}

var plateRe = regexp.MustCompile(`^[A-Z]{3}[0-9][A-Z0-9][0-9]{2}$`)

// NormalizePlate uppercases a plate and drops separators.
func NormalizePlate(value string) string {
	return strings.ToUpper(strings.NewReplacer("-", "", " ", "").Replace(value))
}

// LicensePlate accepts the old ABC1234 layout and the Mercosul ABC1D23 one.
func LicensePlate(value string) bool {
	return plateRe.MatchString(NormalizePlate(value))
}

// Digits strips everything but 0-9, so masked CPF/CNPJ input can be stored raw.
func Digits(value string) string {
	return digitsOnly(value)
}
