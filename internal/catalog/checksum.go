// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package catalog

import (
	"strings"
	"unicode"
)

// ValidLuhn reports whether the digits of s form a valid Luhn number.
// Separators (spaces and dashes) are stripped first. Credit card numbers
// must be 13 to 19 digits long.
func ValidLuhn(s string) bool {
	digits := digitsOnly(s)
	if len(digits) < 13 || len(digits) > 19 {
		return false
	}
	sum := 0
	double := false
	for i := len(digits) - 1; i >= 0; i-- {
		d := int(digits[i] - '0')
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		double = !double
	}
	return sum%10 == 0
}

// Verhoeff dihedral group tables.
var (
	verhoeffD = [10][10]int{
		{0, 1, 2, 3, 4, 5, 6, 7, 8, 9},
		{1, 2, 3, 4, 0, 6, 7, 8, 9, 5},
		{2, 3, 4, 0, 1, 7, 8, 9, 5, 6},
		{3, 4, 0, 1, 2, 8, 9, 5, 6, 7},
		{4, 0, 1, 2, 3, 9, 5, 6, 7, 8},
		{5, 9, 8, 7, 6, 0, 4, 3, 2, 1},
		{6, 5, 9, 8, 7, 1, 0, 4, 3, 2},
		{7, 6, 5, 9, 8, 2, 1, 0, 4, 3},
		{8, 7, 6, 5, 9, 3, 2, 1, 0, 4},
		{9, 8, 7, 6, 5, 4, 3, 2, 1, 0},
	}
	verhoeffP = [8][10]int{
		{0, 1, 2, 3, 4, 5, 6, 7, 8, 9},
		{1, 5, 7, 6, 2, 8, 3, 0, 9, 4},
		{5, 8, 0, 3, 7, 9, 6, 1, 4, 2},
		{8, 9, 1, 6, 0, 4, 3, 5, 2, 7},
		{9, 4, 5, 3, 1, 2, 6, 8, 7, 0},
		{4, 2, 8, 6, 5, 7, 3, 9, 0, 1},
		{2, 7, 9, 3, 8, 0, 6, 4, 1, 5},
		{7, 0, 4, 6, 9, 1, 3, 2, 5, 8},
	}
)

// ValidVerhoeff reports whether the digit string s (checksum digit
// included) passes the Verhoeff check.
func ValidVerhoeff(s string) bool {
	digits := digitsOnly(s)
	if digits == "" {
		return false
	}
	c := 0
	n := len(digits)
	for i := 0; i < n; i++ {
		d := int(digits[n-1-i] - '0')
		c = verhoeffD[c][verhoeffP[i%8][d]]
	}
	return c == 0
}

// ValidAadhaar reports whether s is a structurally valid Aadhaar number:
// 12 digits, first digit 2-9, Verhoeff checksum over all 12 digits.
func ValidAadhaar(s string) bool {
	digits := digitsOnly(s)
	if len(digits) != 12 {
		return false
	}
	if digits[0] < '2' {
		return false
	}
	return ValidVerhoeff(digits)
}

// ValidIBAN reports whether s passes the ISO 13616 MOD-97 check. Spaces
// are stripped, letters are mapped to 10..35, the first four characters
// are moved to the end, and the remainder modulo 97 must equal 1.
func ValidIBAN(s string) bool {
	cleaned := strings.ToUpper(strings.Map(dropSpace, s))
	if len(cleaned) < 15 || len(cleaned) > 34 {
		return false
	}
	if !unicode.IsLetter(rune(cleaned[0])) || !unicode.IsLetter(rune(cleaned[1])) {
		return false
	}
	rearranged := cleaned[4:] + cleaned[:4]
	rem := 0
	for _, r := range rearranged {
		var v int
		switch {
		case r >= '0' && r <= '9':
			v = int(r - '0')
		case r >= 'A' && r <= 'Z':
			v = int(r-'A') + 10
		default:
			return false
		}
		if v >= 10 {
			rem = (rem*10 + v/10) % 97
		}
		rem = (rem*10 + v%10) % 97
	}
	return rem == 1
}

// ValidBIC reports whether s is a structurally valid BIC/SWIFT code:
// 8 or 11 characters, the first 6 uppercase letters (bank and country
// codes), the rest uppercase alphanumeric.
func ValidBIC(s string) bool {
	if len(s) != 8 && len(s) != 11 {
		return false
	}
	for i := 0; i < 6; i++ {
		if s[i] < 'A' || s[i] > 'Z' {
			return false
		}
	}
	for i := 6; i < len(s); i++ {
		if !isUpperAlnum(s[i]) {
			return false
		}
	}
	return true
}

// panHolderTypes are the letters permitted in the fourth position of an
// Indian PAN (the holder-type code).
const panHolderTypes = "ABCFGHLJPT"

// ValidPAN reports whether s is a structurally valid Indian PAN:
// 5 uppercase letters, 4 digits, 1 uppercase letter, with the fourth
// letter drawn from the holder-type set.
func ValidPAN(s string) bool {
	if len(s) != 10 {
		return false
	}
	for i := 0; i < 5; i++ {
		if s[i] < 'A' || s[i] > 'Z' {
			return false
		}
	}
	for i := 5; i < 9; i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	if s[9] < 'A' || s[9] > 'Z' {
		return false
	}
	return strings.IndexByte(panHolderTypes, s[3]) >= 0
}

func digitsOnly(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func dropSpace(r rune) rune {
	if r == ' ' || r == '\t' {
		return -1
	}
	return r
}

func isUpperAlnum(b byte) bool {
	return (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}
