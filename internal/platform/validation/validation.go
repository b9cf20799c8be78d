// Package validation は gin の binding エンジンに独自タグを登録する。
package validation

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"aais-kitchen-backend/internal/platform/mealtype"
)

const DateLayout = "2006-01-02"

// Register: main から一度だけ呼ぶ
func Register() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
	}
	return RegisterOn(v)
}

func RegisterOn(v *validator.Validate) error {
	if err := v.RegisterValidation("meal_type", isMealType); err != nil {
		return err
	}
	return v.RegisterValidation("ymd", isDate)
}

// meal_type: breakfast / lunch / dinner（大文字小文字は問わない）
func isMealType(fl validator.FieldLevel) bool {
	_, err := mealtype.Parse(fl.Field().String())
	return err == nil
}

// ymd: YYYY-MM-DD
func isDate(fl validator.FieldLevel) bool {
	_, err := time.Parse(DateLayout, fl.Field().String())
	return err == nil
}
