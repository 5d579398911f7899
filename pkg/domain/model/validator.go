package model

import (
	"regexp"

	"github.com/secmon-lab/kassa/pkg/domain/model/config"
	"github.com/secmon-lab/kassa/pkg/domain/types"
	"golang.org/x/text/unicode/norm"
)

var (
	alphaPattern   = regexp.MustCompile(`^[A-Za-zÀ-ÖØ-öø-ÿ]+$`)
	numericPattern = regexp.MustCompile(`^\d+$`)
)

// Validate reports whether value satisfies the rule of kind. Alpha and
// numeric values must be non-empty; free values are always valid.
func Validate(value string, kind types.FieldKind) bool {
	switch kind {
	case types.FieldKindAlpha:
		// decomposed input ("e" + U+0301) must match like its composed form
		return value != "" && alphaPattern.MatchString(norm.NFC.String(value))
	case types.FieldKindNumeric:
		return value != "" && numericPattern.MatchString(value)
	default:
		return true
	}
}

// hasFormatError is the editing rule: a cleared field never shows an error
func hasFormatError(value string, kind types.FieldKind) bool {
	if value == "" {
		return false
	}
	return !Validate(value, kind)
}

// IssueReason tells why a submission was rejected
type IssueReason string

const (
	IssueFormat     IssueReason = "format"
	IssueRequired   IssueReason = "required"
	IssueNoDelivery IssueReason = "no_delivery"
	IssueNoPayment  IssueReason = "no_payment"
	IssueEmptyCart  IssueReason = "empty_cart"
)

// ValidationIssue is a single reason of a rejected submission. Field is
// empty for issues not tied to a form field.
type ValidationIssue struct {
	Field  types.FieldID `json:"field,omitempty"`
	Reason IssueReason   `json:"reason"`
}

// FieldValidator validates a whole form against the field schema
type FieldValidator struct {
	schema *config.FieldSchema
}

// NewFieldValidator creates a new FieldValidator with the given schema
func NewFieldValidator(schema *config.FieldSchema) *FieldValidator {
	return &FieldValidator{
		schema: schema,
	}
}

// ValidateForm re-validates every field of form and returns the annotated
// form with the issues found. Alternate recipient fields are hidden, and
// left untouched, unless alternate is true. extraRequired adds fields
// required by the chosen payment option.
func (v *FieldValidator) ValidateForm(form Form, alternate bool, extraRequired []types.FieldID) (Form, []ValidationIssue) {
	extra := make(map[types.FieldID]bool, len(extraRequired))
	for _, id := range extraRequired {
		extra[id] = true
	}

	entries := form.Entries()
	var issues []ValidationIssue

	for _, spec := range v.schema.Fields {
		if spec.Alternate && !alternate {
			continue
		}

		entry := entries[spec.ID]
		required := spec.Required || extra[spec.ID]

		switch {
		case entry.Value == "" && required:
			entry.Error = true
			issues = append(issues, ValidationIssue{Field: spec.ID, Reason: IssueRequired})
		case entry.Value == "":
			entry.Error = false
		case !Validate(entry.Value, spec.Kind):
			entry.Error = true
			issues = append(issues, ValidationIssue{Field: spec.ID, Reason: IssueFormat})
		default:
			entry.Error = false
		}

		entries[spec.ID] = entry
	}

	return form.withEntries(entries), issues
}
