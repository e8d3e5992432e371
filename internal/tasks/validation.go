package tasks

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"task-board/internal/forms"
)

var (
	// Буквы, цифры, пробельные символы и . , ; : _ ! ? ( ) & ' - #
	// \s в Go - только ASCII, поэтому юникодные пробелы (U+00A0 и т.п.)
	// перечислены отдельно.
	titleRegex = regexp.MustCompile(`^[a-zA-Z0-9\s\p{Zs}\x{2028}\x{2029}\x{FEFF}.,;:_!?()&'#-]*$`)
	// Канонический GUID: 8-4-4-4-12 шестнадцатеричных символов.
	guidRegex = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)
)

// createInput - то, что валидируется в режиме создания.
//
// Порядок тегов задаёт приоритет сообщений: наличие -> формат -> длина/диапазон.
// omitempty делает пустую строку и отсутствие значения одним и тем же.
type createInput struct {
	Title            string `json:"title" validate:"notblank,tasktitle,max=100"`
	DueDate          string `json:"dueDate" validate:"required,datetime=2006-01-02,notpast"`
	Description      string `json:"description" validate:"omitempty,max=500"`
	AssignedToUserID string `json:"assignedToUserId" validate:"omitempty,guid"`
}

// editInput - режим редактирования: те же правила плюс статус и приоритет.
type editInput struct {
	Title            string `json:"title" validate:"notblank,tasktitle,max=100"`
	DueDate          string `json:"dueDate" validate:"required,datetime=2006-01-02,notpast"`
	Description      string `json:"description" validate:"omitempty,max=500"`
	AssignedToUserID string `json:"assignedToUserId" validate:"omitempty,guid"`
	Status           string `json:"status" validate:"required,oneof=Pending InProgress Completed Canceled"`
	Priority         string `json:"priority" validate:"required,oneof=Low Medium High"`
}

var messages = forms.Messages{
	FieldTitle: {
		"notblank":  "El título no puede estar vacío.",
		"tasktitle": "El título solo puede contener letras, números, espacios y símbolos como . , ; : _ ! ? ( ) & ' -.",
		"max":       "El título no puede exceder los 100 caracteres.",
	},
	FieldDueDate: {
		"required": "La fecha de vencimiento es requerida.",
		"datetime": "La fecha de vencimiento no es una fecha válida.",
		"notpast":  "La fecha de vencimiento no puede ser anterior a hoy.",
	},
	FieldDescription: {
		"max": "La descripción no puede exceder los 500 caracteres.",
	},
	FieldAssignedToUserID: {
		"guid": "El ID de usuario asignado debe ser un formato GUID válido.",
	},
	FieldStatus: {
		"required": "El estado es requerido.",
		"oneof":    "Estado inválido.",
	},
	FieldPriority: {
		"required": "La prioridad es requerida.",
		"oneof":    "Prioridad inválida.",
	},
}

// Validator проверяет формы задач.
//
// Единственная зависимость от внешнего мира - часы: "сегодня" вычисляется
// при каждом вызове Validate, а не при создании валидатора.
// Validator безопасен для конкурентного использования.
type Validator struct {
	validate *validator.Validate
	now      func() time.Time
}

// ValidatorOption настраивает Validator.
type ValidatorOption func(*Validator)

// WithClock подменяет источник текущего времени.
func WithClock(now func() time.Time) ValidatorOption {
	return func(v *Validator) { v.now = now }
}

// NewValidator создаёт валидатор форм задач.
func NewValidator(opts ...ValidatorOption) *Validator {
	v := &Validator{
		validate: forms.NewValidate(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(v)
	}

	// Ошибки регистрации возможны только при пустом имени тега.
	_ = v.validate.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	_ = v.validate.RegisterValidation("tasktitle", func(fl validator.FieldLevel) bool {
		return titleRegex.MatchString(fl.Field().String())
	})
	_ = v.validate.RegisterValidation("guid", func(fl validator.FieldLevel) bool {
		return guidRegex.MatchString(fl.Field().String())
	})
	// Формат к этому моменту уже проверен тегом datetime,
	// а строки YYYY-MM-DD сравниваются так же, как даты.
	_ = v.validate.RegisterValidation("notpast", func(fl validator.FieldLevel) bool {
		return fl.Field().String() >= forms.Today(v.now())
	})
	return v
}

// Now - текущее время по часам валидатора.
func (v *Validator) Now() time.Time {
	return v.now()
}

// Validate проверяет форму и возвращает ошибки по полям.
// Пустая карта - форма валидна.
//
// Режим берётся из типа формы: у CreateForm статус и приоритет
// не проверяются никогда, у EditForm они обязательны.
func (v *Validator) Validate(state FormState) forms.FieldErrors {
	var input any
	switch f := state.(type) {
	case CreateForm, *CreateForm:
		c := f.taskFields()
		input = &createInput{
			Title:            c.Title,
			DueDate:          c.DueDate,
			Description:      c.Description,
			AssignedToUserID: c.AssignedToUserID,
		}
	case EditForm:
		input = newEditInput(f)
	case *EditForm:
		input = newEditInput(*f)
	default:
		panic(fmt.Sprintf("tasks: unsupported form state %T", state))
	}

	errs, err := forms.Struct(v.validate, input, messages)
	if err != nil {
		// input всегда указатель на структуру.
		panic(fmt.Sprintf("tasks: validate form: %v", err))
	}
	return errs
}

// ValidateField валидирует всю форму, но возвращает только ошибку
// одного поля - проверка "на лету" при изменении поля.
func (v *Validator) ValidateField(state FormState, field string) forms.FieldErrors {
	return v.Validate(state).Only(field)
}

func newEditInput(f EditForm) *editInput {
	return &editInput{
		Title:            f.Title,
		DueDate:          f.DueDate,
		Description:      f.Description,
		AssignedToUserID: f.AssignedToUserID,
		Status:           string(f.Status),
		Priority:         string(f.Priority),
	}
}
