package forms

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Messages - тексты ошибок по полю и тегу валидации: поле -> тег -> сообщение.
type Messages map[string]map[string]string

// defaultMessages используются, если для пары поле/тег своего текста нет.
// Первый %s - имя поля, второй (если есть) - параметр тега.
var defaultMessages = map[string]string{
	"required": "El campo '%s' es requerido.",
	"max":      "El campo '%s' no puede exceder los %s caracteres.",
	"min":      "El campo '%s' debe tener al menos %s caracteres.",
	"oneof":    "El campo '%s' debe ser uno de: %s.",
	"datetime": "El campo '%s' debe ser una fecha válida.",
	"url":      "El campo '%s' debe ser una URL válida.",
}

// NewValidate создаёт validator, который называет поля по json-тегам.
//
// Благодаря этому FieldError.Field() возвращает "dueDate", а не "DueDate",
// и ключи FieldErrors совпадают с именами полей в JSON.
func NewValidate() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Struct валидирует структуру и переводит ошибки validator в FieldErrors.
//
// validator останавливается на первом упавшем теге поля, поэтому порядок
// тегов в `validate:"..."` задаёт приоритет сообщений.
// Ошибка возвращается только при неверном вызове (например, s не структура).
func Struct(v *validator.Validate, s any, msgs Messages) (FieldErrors, error) {
	return Collect(v.Struct(s), msgs)
}

// Collect переводит результат validator.Struct в FieldErrors.
func Collect(err error, msgs Messages) (FieldErrors, error) {
	out := FieldErrors{}
	if err == nil {
		return out, nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil, err
	}

	for _, fe := range verrs {
		field := fe.Field()
		if _, seen := out[field]; seen {
			continue
		}
		out[field] = msgs.text(field, fe)
	}
	return out, nil
}

func (m Messages) text(field string, fe validator.FieldError) string {
	if byTag, ok := m[field]; ok {
		if msg, ok := byTag[fe.Tag()]; ok {
			return msg
		}
	}

	msg, ok := defaultMessages[fe.Tag()]
	if !ok {
		return fmt.Sprintf("El campo '%s' no es válido.", field)
	}
	if strings.Count(msg, "%s") == 2 {
		return fmt.Sprintf(msg, field, fe.Param())
	}
	return fmt.Sprintf(msg, field)
}
