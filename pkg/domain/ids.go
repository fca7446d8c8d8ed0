// Package domain defines the typed identifiers shared across the service.
//
// Identifiers are parsed once at trust boundaries (HTTP handlers, registry
// adapters) and flow through the rest of the system as distinct types, so a
// RUC can never be passed where a DNI is expected.
package domain

import (
	"fmt"

	dErrors "github.com/ENEASJO/sistema-de-filtro/pkg/domain-errors"
)

// RUC is an 11-digit organization registration number (Registro Único de
// Contribuyentes). The first two digits encode the taxpayer category.
type RUC string

// DNI is an 8-digit national person identifier.
type DNI string

func (r RUC) String() string { return string(r) }
func (d DNI) String() string { return string(d) }

// rucPrefixes is the single shared taxpayer-category table. Both the parser
// and ClassifyIdentifier consult it; nothing else hardcodes prefixes.
var rucPrefixes = map[string]string{
	"10": "natural person",
	"15": "non-domiciled",
	"17": "public entity",
	"20": "legal entity",
}

const (
	rucLength = 11
	dniLength = 8
)

// ParseRUC validates the RUC format: exactly 11 digits with a known category
// prefix. It never panics; malformed input yields a CodeInvalidInput error.
func ParseRUC(s string) (RUC, error) {
	if len(s) != rucLength {
		return "", dErrors.New(dErrors.CodeInvalidInput,
			fmt.Sprintf("ruc must be exactly %d digits", rucLength))
	}
	if !allDigits(s) {
		return "", dErrors.New(dErrors.CodeInvalidInput, "ruc must contain only digits")
	}
	if _, ok := rucPrefixes[s[:2]]; !ok {
		return "", dErrors.New(dErrors.CodeInvalidInput,
			fmt.Sprintf("ruc prefix %q is not a known taxpayer category", s[:2]))
	}
	return RUC(s), nil
}

// ParseDNI validates the DNI format: exactly 8 digits.
func ParseDNI(s string) (DNI, error) {
	if len(s) != dniLength {
		return "", dErrors.New(dErrors.CodeInvalidInput,
			fmt.Sprintf("dni must be exactly %d digits", dniLength))
	}
	if !allDigits(s) {
		return "", dErrors.New(dErrors.CodeInvalidInput, "dni must contain only digits")
	}
	return DNI(s), nil
}

// IdentifierKind is the result of classifying a raw numeric token.
type IdentifierKind int

const (
	KindUnknown IdentifierKind = iota
	KindDNI
	KindRUC
)

func (k IdentifierKind) String() string {
	switch k {
	case KindDNI:
		return "dni"
	case KindRUC:
		return "ruc"
	default:
		return "unknown"
	}
}

// ClassifyIdentifier decides whether a raw token is a person identifier, an
// organization identifier, or neither. Registry adapters use it to drop
// tokens that are truncated or mislabeled RUCs rather than real DNIs.
func ClassifyIdentifier(s string) IdentifierKind {
	if !allDigits(s) {
		return KindUnknown
	}
	switch len(s) {
	case dniLength:
		return KindDNI
	case rucLength:
		if _, ok := rucPrefixes[s[:2]]; ok {
			return KindRUC
		}
		return KindUnknown
	default:
		return KindUnknown
	}
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
