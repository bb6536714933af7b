package models

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"strings"
	"unicode"

	id "amparo/pkg/domain"
)

// Digits strips every non-digit character.
func Digits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ValidCPF checks a CPF (Brazilian taxpayer number). After stripping
// punctuation it must have 11 digits, not all equal, and both mod-11 check
// digits must match.
func ValidCPF(raw string) bool {
	cpf := Digits(raw)
	if len(cpf) != 11 {
		return false
	}
	if strings.Count(cpf, cpf[:1]) == 11 {
		return false
	}
	d1 := cpfCheckDigit(cpf[:9], 10)
	d2 := cpfCheckDigit(cpf[:9]+string(d1), 11)
	return cpf[9] == d1 && cpf[10] == d2
}

// cpfCheckDigit weights base with firstWeight, firstWeight-1, ... 2.
func cpfCheckDigit(base string, firstWeight int) byte {
	sum := 0
	for i := 0; i < len(base); i++ {
		sum += int(base[i]-'0') * (firstWeight - i)
	}
	rem := sum % 11
	if rem < 2 {
		return '0'
	}
	return byte('0' + 11 - rem)
}

// codeSuffixBytes is the entropy behind the 4 hex chars of a code.
const codeSuffixBytes = 2

// GenerateCode builds a human-facing code "A-YYYYMMDD-XXXX". Uniqueness is
// the caller's job: generate again on collision.
func GenerateCode(day id.Date, entropy io.Reader) (string, error) {
	if entropy == nil {
		entropy = rand.Reader
	}
	buf := make([]byte, codeSuffixBytes)
	if _, err := io.ReadFull(entropy, buf); err != nil {
		return "", fmt.Errorf("read code suffix: %w", err)
	}
	return "A-" + day.Compact() + "-" + strings.ToUpper(hex.EncodeToString(buf)), nil
}

// FormatCPF renders 11 digits as xxx.xxx.xxx-xx; anything else renders empty.
func FormatCPF(cpf string) string {
	if len(cpf) != 11 {
		return ""
	}
	return cpf[:3] + "." + cpf[3:6] + "." + cpf[6:9] + "-" + cpf[9:]
}

// FormatPostalCode renders 8 digits as xxxxx-xxx and returns other input as is.
func FormatPostalCode(cep string) string {
	d := Digits(cep)
	if len(d) != 8 {
		return cep
	}
	return d[:5] + "-" + d[5:]
}

// FormatPhone renders 10 or 11 digit numbers with area code and returns
// other input as is.
func FormatPhone(phone string) string {
	d := Digits(phone)
	switch len(d) {
	case 10:
		return "(" + d[:2] + ") " + d[2:6] + "-" + d[6:]
	case 11:
		return "(" + d[:2] + ") " + d[2:7] + "-" + d[7:]
	default:
		return phone
	}
}

// titleCase upper-cases the first letter of each word and lower-cases the rest.
func titleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	prevLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			if prevLetter {
				b.WriteRune(unicode.ToLower(r))
			} else {
				b.WriteRune(unicode.ToUpper(r))
			}
			prevLetter = true
			continue
		}
		prevLetter = false
		b.WriteRune(r)
	}
	return b.String()
}
