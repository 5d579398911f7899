package config

import "github.com/secmon-lab/kassa/pkg/domain/types"

// FieldSpec defines how a checkout form field is validated
type FieldSpec struct {
	ID       types.FieldID
	Name     string
	Kind     types.FieldKind
	Required bool
	// Alternate marks a field of the alternate recipient. Its Required flag
	// only applies while the alternate recipient toggle is on.
	Alternate bool
}

// FieldSchema holds the complete checkout form configuration
type FieldSchema struct {
	Fields []FieldSpec
}

// Lookup returns the spec of the field with the given ID
func (s *FieldSchema) Lookup(id types.FieldID) (FieldSpec, bool) {
	for _, f := range s.Fields {
		if f.ID == id {
			return f, true
		}
	}
	return FieldSpec{}, false
}

// DefaultFieldSchema returns the storefront checkout form. Card fields are
// not required here; the card payment option requires them on its own.
func DefaultFieldSchema() *FieldSchema {
	return &FieldSchema{
		Fields: []FieldSpec{
			{ID: types.FieldFirstName, Name: "First name", Kind: types.FieldKindAlpha, Required: true},
			{ID: types.FieldAltFirstName, Name: "Recipient first name", Kind: types.FieldKindAlpha, Required: true, Alternate: true},
			{ID: types.FieldLastName, Name: "Last name", Kind: types.FieldKindAlpha, Required: true},
			{ID: types.FieldAltLastName, Name: "Recipient last name", Kind: types.FieldKindAlpha, Required: true, Alternate: true},
			{ID: types.FieldMobileNumber, Name: "Mobile number", Kind: types.FieldKindNumeric, Required: true},
			{ID: types.FieldAltMobileNumber, Name: "Recipient mobile number", Kind: types.FieldKindNumeric, Required: true, Alternate: true},
			{ID: types.FieldAddress, Name: "Address", Kind: types.FieldKindFree, Required: true},
			{ID: types.FieldPostal, Name: "Postal code", Kind: types.FieldKindNumeric, Required: true},
			{ID: types.FieldCity, Name: "City", Kind: types.FieldKindAlpha, Required: true},
			{ID: types.FieldCardNumber, Name: "Card number", Kind: types.FieldKindNumeric},
			{ID: types.FieldCVC, Name: "CVC", Kind: types.FieldKindNumeric},
			{ID: types.FieldCardMonth, Name: "Expiry month", Kind: types.FieldKindNumeric},
			{ID: types.FieldCardYear, Name: "Expiry year", Kind: types.FieldKindNumeric},
		},
	}
}
