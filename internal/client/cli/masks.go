package cli

import (
	"fmt"
	"strings"
)

// onlyDigits strips everything but 0-9 so masked and raw input format
// the same way
func onlyDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// FormatCPF renders a CPF as 000.000.000-00. Input that is not eleven
// digits long comes back unchanged.
func FormatCPF(s string) string {
	d := onlyDigits(s)
	if len(d) != 11 {
		return s
	}
	return fmt.Sprintf("%s.%s.%s-%s", d[0:3], d[3:6], d[6:9], d[9:11])
}

// FormatPhone renders a Brazilian mobile number as (00) 00000-0000,
// tolerating a leading 55 country code. Anything else comes back
// unchanged.
func FormatPhone(s string) string {
	d := onlyDigits(s)
	if len(d) == 13 && strings.HasPrefix(d, "55") {
		d = d[2:]
	}
	if len(d) != 11 {
		return s
	}
	return fmt.Sprintf("(%s) %s-%s", d[0:2], d[2:7], d[7:11])
}

// FormatCEP renders a postal code as 00000-000
func FormatCEP(s string) string {
	d := onlyDigits(s)
	if len(d) != 8 {
		return s
	}
	return fmt.Sprintf("%s-%s", d[0:5], d[5:8])
}

// FormatBRL renders an amount in cents as R$ 1.234,56
func FormatBRL(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}

	reais := cents / 100
	rest := cents % 100

	whole := fmt.Sprintf("%d", reais)
	var groups []string
	for len(whole) > 3 {
		groups = append([]string{whole[len(whole)-3:]}, groups...)
		whole = whole[:len(whole)-3]
	}
	groups = append([]string{whole}, groups...)

	return fmt.Sprintf("%sR$ %s,%02d", sign, strings.Join(groups, "."), rest)
}
