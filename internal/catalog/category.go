// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package catalog holds the redaction categories, the per-language
// pattern rules for each of them, and the checksum routines the rules
// use to validate raw matches.
package catalog

import "strings"

// Category identifies one class of sensitive data the detector can find.
type Category string

const (
	CategoryPhone      Category = "PHONE"
	CategoryEmail      Category = "EMAIL"
	CategoryCreditCard Category = "CREDIT_CARD"
	CategoryCVV        Category = "CVV"
	CategoryExpiration Category = "EXPIRATION"
	CategoryIBAN       Category = "IBAN"
	CategoryBIC        Category = "BIC"
	CategoryAadhaar    Category = "AADHAAR"
	CategoryPAN        Category = "PAN"
	CategoryCustom     Category = "CUSTOM"
)

// AllCategories returns every built-in category in a stable order.
// CategoryCustom is excluded because it only exists when a run supplies
// a custom mask pattern.
func AllCategories() []Category {
	return []Category{
		CategoryPhone,
		CategoryEmail,
		CategoryCreditCard,
		CategoryCVV,
		CategoryExpiration,
		CategoryIBAN,
		CategoryBIC,
		CategoryAadhaar,
		CategoryPAN,
	}
}

// ParseCategory converts a user-supplied name into a Category. It accepts
// the canonical form and a few common aliases, case-insensitively.
func ParseCategory(s string) (Category, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "PHONE", "PHONES", "TEL":
		return CategoryPhone, true
	case "EMAIL", "EMAILS", "MAIL":
		return CategoryEmail, true
	case "CREDIT_CARD", "CREDITCARD", "CC", "CARD":
		return CategoryCreditCard, true
	case "CVV", "CVC", "CSC":
		return CategoryCVV, true
	case "EXPIRATION", "EXPIRY", "EXP":
		return CategoryExpiration, true
	case "IBAN":
		return CategoryIBAN, true
	case "BIC", "SWIFT":
		return CategoryBIC, true
	case "AADHAAR", "AADHAR":
		return CategoryAadhaar, true
	case "PAN":
		return CategoryPAN, true
	case "CUSTOM", "MASK":
		return CategoryCustom, true
	}
	return "", false
}

// HighRisk reports whether findings in this category are treated as
// financial identifiers during verification. High-risk residues are
// reported even when they sit inside text that looks like a heading.
func (c Category) HighRisk() bool {
	switch c {
	case CategoryCreditCard, CategoryCVV, CategoryIBAN, CategoryBIC, CategoryAadhaar, CategoryPAN:
		return true
	}
	return false
}

// CountSensitive reports whether short numeric matches in this category
// must be screened against years and page numbers before they are kept.
func (c Category) CountSensitive() bool {
	switch c {
	case CategoryCVV, CategoryPhone:
		return true
	}
	return false
}

// DisplayName returns the human-readable label used in summaries and
// reports.
func (c Category) DisplayName() string {
	switch c {
	case CategoryPhone:
		return "Phone Numbers"
	case CategoryEmail:
		return "Email Addresses"
	case CategoryCreditCard:
		return "Credit Card Numbers"
	case CategoryCVV:
		return "CVV Codes"
	case CategoryExpiration:
		return "Expiration Dates"
	case CategoryIBAN:
		return "IBAN Numbers"
	case CategoryBIC:
		return "BIC/SWIFT Codes"
	case CategoryAadhaar:
		return "Aadhaar Numbers"
	case CategoryPAN:
		return "PAN Numbers"
	case CategoryCustom:
		return "Custom Mask"
	}
	return string(c)
}
