package types

// FieldID identifies a checkout form field. Identifiers keep the
// storefront's wire names so the frontend can post them unchanged.
type FieldID string

const (
	FieldFirstName       FieldID = "firstName"
	FieldAltFirstName    FieldID = "altFirstName"
	FieldLastName        FieldID = "lastName"
	FieldAltLastName     FieldID = "altLastName"
	FieldMobileNumber    FieldID = "mobileNumber"
	FieldAltMobileNumber FieldID = "altMobileNumber"
	FieldAddress         FieldID = "address"
	FieldPostal          FieldID = "postal"
	FieldCity            FieldID = "city"
	FieldCardNumber      FieldID = "cardNumber"
	FieldCVC             FieldID = "CVC"
	FieldCardMonth       FieldID = "cardMonth"
	FieldCardYear        FieldID = "cardYear"
)

// AllFieldIDs returns every field of the checkout form in display order
func AllFieldIDs() []FieldID {
	return []FieldID{
		FieldFirstName,
		FieldAltFirstName,
		FieldLastName,
		FieldAltLastName,
		FieldMobileNumber,
		FieldAltMobileNumber,
		FieldAddress,
		FieldPostal,
		FieldCity,
		FieldCardNumber,
		FieldCVC,
		FieldCardMonth,
		FieldCardYear,
	}
}

// String returns the string representation of the field ID
func (f FieldID) String() string {
	return string(f)
}

// FieldKind decides which validation rule applies to a field value
type FieldKind string

const (
	// FieldKindAlpha accepts letters only, Latin-1 diacritics included
	FieldKindAlpha FieldKind = "alpha"
	// FieldKindNumeric accepts ASCII digits only
	FieldKindNumeric FieldKind = "numeric"
	// FieldKindFree accepts anything
	FieldKindFree FieldKind = "free"
)

// AllFieldKinds returns all valid field kinds
func AllFieldKinds() []FieldKind {
	return []FieldKind{
		FieldKindAlpha,
		FieldKindNumeric,
		FieldKindFree,
	}
}

// IsValid checks if the field kind is valid
func (k FieldKind) IsValid() bool {
	switch k {
	case FieldKindAlpha,
		FieldKindNumeric,
		FieldKindFree:
		return true
	default:
		return false
	}
}

// String returns the string representation of the field kind
func (k FieldKind) String() string {
	return string(k)
}
