package models

import (
	"github.com/gin-gonic/gin/binding"
	english "github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	entranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/leebenson/conform"
)

var trans ut.Translator

func init() {
	en := english.New()
	uni := ut.New(en, en)
	trans, _ = uni.GetTranslator("en")
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = entranslations.RegisterDefaultTranslations(v, trans)
	}
}

// NormalizeWhitespace applies the conform tags of a bound request struct.
func NormalizeWhitespace(data interface{}) error {
	return conform.Strings(data)
}

// TranslateError flattens a binding error into per-field messages.
func TranslateError(err error) []string {
	if err == nil {
		return nil
	}
	validatorErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []string{err.Error()}
	}
	var errs []string
	for _, e := range validatorErrs {
		errs = append(errs, e.Translate(trans))
	}
	return errs
}
