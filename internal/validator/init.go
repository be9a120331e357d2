package validator

import (
	"ctchen222/tictactoe/internal/game"
	"reflect"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())

	// "mark" accepts X or O.
	validate.RegisterValidation("mark", func(fl validator.FieldLevel) bool {
		if fl.Field().Kind() != reflect.String {
			return false
		}
		m := game.PlayerMark(fl.Field().String())
		return m == game.PlayerX || m == game.PlayerO
	})
}

func GetValidator() *validator.Validate {
	return validate
}
