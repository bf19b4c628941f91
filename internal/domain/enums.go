package domain

import (
	"fmt"
	"strings"
)

// OwnerType represents the resource category a metafield definition applies to
// (Shopify MetafieldOwnerType)
type OwnerType string

const (
	OwnerTypeCollection     OwnerType = "COLLECTION"
	OwnerTypeCustomer       OwnerType = "CUSTOMER"
	OwnerTypeOrder          OwnerType = "ORDER"
	OwnerTypeProduct        OwnerType = "PRODUCT"
	OwnerTypeProductVariant OwnerType = "PRODUCTVARIANT"
)

// AllOwnerTypes returns the supported owner types in a fixed order.
// Export iterates these one API call at a time.
func AllOwnerTypes() []OwnerType {
	return []OwnerType{
		OwnerTypeCollection,
		OwnerTypeCustomer,
		OwnerTypeOrder,
		OwnerTypeProduct,
		OwnerTypeProductVariant,
	}
}

// IsValid checks if the owner type is one this tool supports
func (t OwnerType) IsValid() bool {
	switch t {
	case OwnerTypeCollection,
		OwnerTypeCustomer,
		OwnerTypeOrder,
		OwnerTypeProduct,
		OwnerTypeProductVariant:
		return true
	default:
		return false
	}
}

// ParseOwnerType normalizes and validates an owner type read from a file
func ParseOwnerType(s string) (OwnerType, error) {
	t := OwnerType(strings.ToUpper(strings.TrimSpace(s)))
	if !t.IsValid() {
		return "", fmt.Errorf("unknown owner type %q", s)
	}
	return t, nil
}

// DiffStatus classifies how a definition differs between source and target
type DiffStatus string

const (
	DiffStatusMissingInTarget DiffStatus = "missing_in_target"
	DiffStatusExtraInTarget   DiffStatus = "extra_in_target"
	DiffStatusChanged         DiffStatus = "changed"
)

// IsValid checks if the diff status is valid
func (s DiffStatus) IsValid() bool {
	switch s {
	case DiffStatusMissingInTarget, DiffStatusExtraInTarget, DiffStatusChanged:
		return true
	default:
		return false
	}
}
