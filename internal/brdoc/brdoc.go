// Package brdoc holds Brazilian document validation and display formatting:
// CPF/CNPJ check digits, CPF/CNPJ/CEP masks and pt-BR currency output.
package brdoc

import (
	"fmt"
	"strings"
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
	for i := 1; i < len(s); i++ {
		if s[i] != s[0] {
			return false
		}
	}
	return true
}

// ValidCPF reports whether the input carries valid CPF check digits.
// Punctuation is ignored; repeated-digit sequences are rejected.
func ValidCPF(cpf string) bool {
	d := digitsOnly(cpf)
	if len(d) != 11 || allSame(d) {
		return false
	}

	sum := 0
	for i := 0; i < 9; i++ {
		sum += int(d[i]-'0') * (10 - i)
	}
	r := (sum * 10) % 11
	if r == 10 {
		r = 0
	}
	if r != int(d[9]-'0') {
		return false
	}

	sum = 0
	for i := 0; i < 10; i++ {
		sum += int(d[i]-'0') * (11 - i)
	}
	r = (sum * 10) % 11
	if r == 10 {
		r = 0
	}
	return r == int(d[10]-'0')
}

// ValidCNPJ reports whether the input carries valid CNPJ check digits.
func ValidCNPJ(cnpj string) bool {
	d := digitsOnly(cnpj)
	if len(d) != 14 || allSame(d) {
		return false
	}
	return cnpjDigit(d, 12) == int(d[12]-'0') && cnpjDigit(d, 13) == int(d[13]-'0')
}

func cnpjDigit(d string, size int) int {
	pos := size - 7
	sum := 0
	for i := 0; i < size; i++ {
		sum += int(d[i]-'0') * pos
		pos--
		if pos < 2 {
			pos = 9
		}
	}
	if sum%11 < 2 {
		return 0
	}
	return 11 - sum%11
}

// MaskCPF formats as 000.000.000-00. Incomplete input is returned as digits.
func MaskCPF(v string) string {
	d := digitsOnly(v)
	if len(d) > 11 {
		d = d[:11]
	}
	if len(d) < 11 {
		return d
	}
	return d[:3] + "." + d[3:6] + "." + d[6:9] + "-" + d[9:]
}

// MaskCNPJ formats as 00.000.000/0000-00.
func MaskCNPJ(v string) string {
	d := digitsOnly(v)
	if len(d) > 14 {
		d = d[:14]
	}
	if len(d) < 14 {
		return d
	}
	return d[:2] + "." + d[2:5] + "." + d[5:8] + "/" + d[8:12] + "-" + d[12:]
}

// MaskCEP formats as 00000-000.
func MaskCEP(v string) string {
	d := digitsOnly(v)
	if len(d) > 8 {
		d = d[:8]
	}
	if len(d) < 8 {
		return d
	}
	return d[:5] + "-" + d[5:]
}

// FormatBRL renders a value as pt-BR currency: R$ 1.234,56. Negative values
// keep a leading minus.
func FormatBRL(value float64) string {
	return FormatCurrency("R$", value)
}

// FormatCurrency renders a value in pt-BR style with a caller-chosen symbol.
func FormatCurrency(symbol string, value float64) string {
	neg := value < 0
	if neg {
		value = -value
	}
	cents := fmt.Sprintf("%.2f", value)
	intPart, fracPart, _ := strings.Cut(cents, ".")

	var groups []string
	for len(intPart) > 3 {
		groups = append([]string{intPart[len(intPart)-3:]}, groups...)
		intPart = intPart[:len(intPart)-3]
	}
	groups = append([]string{intPart}, groups...)

	out := symbol + " " + strings.Join(groups, ".") + "," + fracPart
	if neg {
		out = "-" + out
	}
	return out
}
