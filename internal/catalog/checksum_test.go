// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package catalog

import "testing"

func TestValidLuhn(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"valid visa test number", "4111111111111111", true},
		{"off by one", "4111111111111112", false},
		{"valid with dashes", "4111-1111-1111-1111", true},
		{"valid with spaces", "5500 0000 0000 0004", true},
		{"valid amex", "378282246310005", true},
		{"too short", "411111", false},
		{"too long", "41111111111111111111", false},
		{"empty", "", false},
		{"letters only", "abcdefghijklm", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidLuhn(tt.input); got != tt.want {
				t.Errorf("ValidLuhn(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestValidVerhoeff(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"known valid", "2363", true},
		{"known invalid", "2364", false},
		{"single check digit", "0", true},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidVerhoeff(tt.input); got != tt.want {
				t.Errorf("ValidVerhoeff(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestValidAadhaar(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"valid with spaces", "2341 2341 2346", true},
		{"valid without spaces", "987654321096", true},
		{"bad checksum", "2341 2341 2341", false},
		{"starts with 0", "034123412346", false},
		{"starts with 1", "134123412346", false},
		{"too short", "2341 2341", false},
		{"too long", "2341 2341 2341 2", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidAadhaar(tt.input); got != tt.want {
				t.Errorf("ValidAadhaar(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestValidIBAN(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"valid german", "DE89370400440532013000", true},
		{"valid german with spaces", "DE89 3704 0044 0532 0130 00", true},
		{"valid british", "GB82WEST12345698765432", true},
		{"valid french", "FR1420041010050500013M02606", true},
		{"bad check digits", "DE89370400440532013001", false},
		{"too short", "DE8937", false},
		{"no country code", "8937040044053201300089", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidIBAN(tt.input); got != tt.want {
				t.Errorf("ValidIBAN(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestValidBIC(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"valid 8 char", "DEUTDEFF", true},
		{"valid 11 char", "DEUTDEFF500", true},
		{"digits in bank code", "DEUT12FF", false},
		{"lowercase", "deutdeff", false},
		{"wrong length", "DEUTDEFF50", false},
		{"too short", "DEUTDE", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidBIC(tt.input); got != tt.want {
				t.Errorf("ValidBIC(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestValidPAN(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"valid person", "ABCPD1234E", true},
		{"valid company", "AAACA1234A", true},
		{"holder type not allowed", "AAADA1234A", false},
		{"digits in prefix", "AB1PD1234E", false},
		{"missing suffix letter", "ABCPD12345", false},
		{"lowercase", "abcpd1234e", false},
		{"too short", "ABCPD1234", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidPAN(tt.input); got != tt.want {
				t.Errorf("ValidPAN(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
