package model_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/kassa/pkg/domain/model"
	"github.com/secmon-lab/kassa/pkg/domain/model/config"
	"github.com/secmon-lab/kassa/pkg/domain/types"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		value string
		kind  types.FieldKind
		want  bool
	}{
		{"alpha plain", "Anna", types.FieldKindAlpha, true},
		{"alpha swedish letters", "Åsa", types.FieldKindAlpha, true},
		{"alpha lowercase diacritics", "björk", types.FieldKindAlpha, true},
		{"alpha y with diaeresis", "ÿ", types.FieldKindAlpha, true},
		{"alpha decomposed accent", "Jose\u0301", types.FieldKindAlpha, true},
		{"alpha empty", "", types.FieldKindAlpha, false},
		{"alpha digit", "Anna1", types.FieldKindAlpha, false},
		{"alpha whitespace", "Anna Lisa", types.FieldKindAlpha, false},
		{"alpha apostrophe", "O'Brien", types.FieldKindAlpha, false},
		{"alpha multiplication sign", "A×B", types.FieldKindAlpha, false},
		{"alpha division sign", "a÷b", types.FieldKindAlpha, false},
		{"alpha outside latin-1", "Łukasz", types.FieldKindAlpha, false},
		{"numeric digits", "0701234567", types.FieldKindNumeric, true},
		{"numeric single digit", "7", types.FieldKindNumeric, true},
		{"numeric empty", "", types.FieldKindNumeric, false},
		{"numeric letter", "12a", types.FieldKindNumeric, false},
		{"numeric leading space", " 12", types.FieldKindNumeric, false},
		{"numeric dash", "070-123", types.FieldKindNumeric, false},
		{"numeric non-ascii digits", "١٢٣", types.FieldKindNumeric, false},
		{"free anything", "Storgatan 1, lgh 1102", types.FieldKindFree, true},
		{"free empty", "", types.FieldKindFree, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gt.Value(t, model.Validate(tt.value, tt.kind)).Equal(tt.want)
		})
	}
}

func TestFieldValidator_ValidateForm(t *testing.T) {
	schema := config.DefaultFieldSchema()
	validator := model.NewFieldValidator(schema)

	fill := func(t *testing.T, values map[types.FieldID]string) model.Form {
		t.Helper()
		form := model.NewForm(schema)
		for id, v := range values {
			var err error
			form, err = form.SetField(id, v)
			gt.NoError(t, err).Required()
		}
		return form
	}

	complete := map[types.FieldID]string{
		types.FieldFirstName:    "Anna",
		types.FieldLastName:     "Lind",
		types.FieldMobileNumber: "0701234567",
		types.FieldAddress:      "Storgatan 1",
		types.FieldPostal:       "11122",
		types.FieldCity:         "Stockholm",
	}

	t.Run("complete form has no issues", func(t *testing.T) {
		form, issues := validator.ValidateForm(fill(t, complete), false, nil)
		gt.A(t, issues).Length(0)
		gt.Bool(t, form.HasErrors()).False()
	})

	t.Run("empty required field is flagged", func(t *testing.T) {
		values := map[types.FieldID]string{}
		for k, v := range complete {
			values[k] = v
		}
		delete(values, types.FieldFirstName)

		form, issues := validator.ValidateForm(fill(t, values), false, nil)
		gt.A(t, issues).Length(1)
		gt.Value(t, issues[0]).Equal(model.ValidationIssue{Field: types.FieldFirstName, Reason: model.IssueRequired})

		entry, ok := form.Get(types.FieldFirstName)
		gt.Bool(t, ok).True()
		gt.Bool(t, entry.Error).True()
	})

	t.Run("format error is flagged", func(t *testing.T) {
		values := map[types.FieldID]string{}
		for k, v := range complete {
			values[k] = v
		}
		values[types.FieldPostal] = "111 22"

		_, issues := validator.ValidateForm(fill(t, values), false, nil)
		gt.A(t, issues).Length(1)
		gt.Value(t, issues[0].Reason).Equal(model.IssueFormat)
		gt.Value(t, issues[0].Field).Equal(types.FieldPostal)
	})

	t.Run("alternate fields required only when toggled on", func(t *testing.T) {
		_, issues := validator.ValidateForm(fill(t, complete), true, nil)
		gt.A(t, issues).Length(3)
		for _, issue := range issues {
			gt.Value(t, issue.Reason).Equal(model.IssueRequired)
		}
	})

	t.Run("hidden alternate fields are ignored", func(t *testing.T) {
		values := map[types.FieldID]string{}
		for k, v := range complete {
			values[k] = v
		}
		values[types.FieldAltFirstName] = "R2D2"

		_, issues := validator.ValidateForm(fill(t, values), false, nil)
		gt.A(t, issues).Length(0)
	})

	t.Run("extra required fields from payment", func(t *testing.T) {
		_, issues := validator.ValidateForm(fill(t, complete), false, []types.FieldID{types.FieldCardNumber, types.FieldCVC})
		gt.A(t, issues).Length(2)
	})

	t.Run("stale error is cleared when value became valid", func(t *testing.T) {
		form := fill(t, complete)
		replaced, err := form.ReplaceAll(map[types.FieldID]model.FieldEntry{
			types.FieldFirstName:    {Value: "Anna", Error: true},
			types.FieldLastName:     {Value: "Lind"},
			types.FieldMobileNumber: {Value: "0701234567"},
			types.FieldAddress:      {Value: "Storgatan 1"},
			types.FieldPostal:       {Value: "11122"},
			types.FieldCity:         {Value: "Stockholm"},
		})
		gt.NoError(t, err).Required()

		validated, issues := validator.ValidateForm(replaced, false, nil)
		gt.A(t, issues).Length(0)
		gt.Bool(t, validated.HasErrors()).False()
	})
}
