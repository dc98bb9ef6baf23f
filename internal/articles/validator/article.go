// Package validator checks tool inputs before any network I/O happens.
// Struct-level rules run through go-playground/validator; cross-field rules
// that tags cannot express live in the business-rule hooks.
package validator

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"joomlamcp/pkg/joomla"
	"joomlamcp/pkg/model"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}
	msg := v[0].Error()
	for _, e := range v[1:] {
		msg += "; " + e.Error()
	}
	return msg
}

type ArticleValidator struct {
	validate *validator.Validate
}

func New() *ArticleValidator {
	return &ArticleValidator{
		validate: validator.New(),
	}
}

func (v *ArticleValidator) ValidateCreate(in *model.CreateArticleInput) error {
	return v.validateStruct(in)
}

func (v *ArticleValidator) ValidateUpdate(in *model.UpdateArticleInput) error {
	if err := v.validateStruct(in); err != nil {
		return err
	}

	if in.Title == "" && in.IntroText == "" && in.FullText == "" && in.MetaDesc == "" {
		return ValidationErrors{{
			Field:   "fields",
			Message: "at least one of title, introtext, fulltext, or metadesc must be provided",
		}}
	}

	return nil
}

func (v *ArticleValidator) ValidateStateChange(in *model.StateChangeInput) error {
	if err := v.validateStruct(in); err != nil {
		return err
	}

	if !joomla.State(in.TargetState).Valid() {
		return ValidationErrors{{
			Field:   "target_state",
			Message: fmt.Sprintf("invalid target state %d, valid states are %s", in.TargetState, joomla.ValidStates),
		}}
	}

	return nil
}

func (v *ArticleValidator) validateStruct(in any) error {
	if err := v.validate.Struct(in); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return translate(validationErrs)
		}
		return err
	}
	return nil
}

func translate(errs validator.ValidationErrors) ValidationErrors {
	var out ValidationErrors
	for _, err := range errs {
		out = append(out, ValidationError{
			Field:   err.Field(),
			Message: fmt.Sprintf("failed %q validation", err.Tag()),
		})
	}
	return out
}
