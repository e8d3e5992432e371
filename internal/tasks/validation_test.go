package tasks

import (
	"math/rand"
	"reflect"
	"strings"
	"testing"
	"time"

	"task-board/internal/forms"
)

const testGUID = "a1b2c3d4-e5f6-7890-abcd-ef1234567890"

// fixedNow - "сегодня" во всех тестах валидации.
var fixedNow = time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)

func newTestValidator() *Validator {
	return NewValidator(WithClock(func() time.Time { return fixedNow }))
}

func validCreateForm() CreateForm {
	return CreateForm{TaskFields: TaskFields{
		ProjectID: "p-1",
		Title:     "Preparar informe",
		DueDate:   "2026-10-20",
	}}
}

func validEditForm() EditForm {
	return EditForm{
		TaskFields: validCreateForm().TaskFields,
		ID:         "t-1",
		Status:     StatusInProgress,
		Priority:   PriorityHigh,
	}
}

func TestValidateValidForms(t *testing.T) {
	v := newTestValidator()

	if errs := v.Validate(validCreateForm()); !errs.Valid() {
		t.Errorf("create form: unexpected errors %v", errs)
	}
	if errs := v.Validate(validEditForm()); !errs.Valid() {
		t.Errorf("edit form: unexpected errors %v", errs)
	}

	full := validEditForm()
	full.Description = strings.Repeat("d", 500)
	full.AssignedToUserID = strings.ToUpper(testGUID)
	full.CompletionDate = "2026-10-19"
	if errs := v.Validate(&full); !errs.Valid() {
		t.Errorf("pointer edit form: unexpected errors %v", errs)
	}
}

func TestValidateTitle(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{"empty", "", "El título no puede estar vacío."},
		{"only spaces", "   \t", "El título no puede estar vacío."},
		{"allowed symbols", "Fix bug #42 (urgent)!", ""},
		{"punctuation", "Revisar: datos, costes; plan_B & 'final' - ok?", ""},
		{"no-break space", "Informe\u00a0final", ""},
		{"unicode spaces", "Plan\u2003A\u2028B", ""},
		{"html", "Fix <script> bug", "El título solo puede contener letras, números, espacios y símbolos como . , ; : _ ! ? ( ) & ' -."},
		{"non ascii letter", "Año nuevo", "El título solo puede contener letras, números, espacios y símbolos como . , ; : _ ! ? ( ) & ' -."},
		{"exactly 100", strings.Repeat("a", 100), ""},
		{"101 chars", strings.Repeat("a", 101), "El título no puede exceder los 100 caracteres."},
		{"format before length", strings.Repeat("<", 150), "El título solo puede contener letras, números, espacios y símbolos como . , ; : _ ! ? ( ) & ' -."},
	}

	v := newTestValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := validCreateForm()
			f.Title = tt.title
			got := v.Validate(f)[FieldTitle]
			if got != tt.want {
				t.Errorf("title error = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValidateDueDate(t *testing.T) {
	tests := []struct {
		name string
		due  string
		want string
	}{
		{"missing", "", "La fecha de vencimiento es requerida."},
		{"today", "2026-10-18", ""},
		{"tomorrow", "2026-10-19", ""},
		{"next year", "2027-01-01", ""},
		{"yesterday", "2026-10-17", "La fecha de vencimiento no puede ser anterior a hoy."},
		{"last year", "2025-12-31", "La fecha de vencimiento no puede ser anterior a hoy."},
		{"not a calendar date", "2026-02-30", "La fecha de vencimiento no es una fecha válida."},
		{"wrong layout", "18/10/2026", "La fecha de vencimiento no es una fecha válida."},
		{"with time", "2026-10-20T00:00:00Z", "La fecha de vencimiento no es una fecha válida."},
	}

	v := newTestValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := validCreateForm()
			f.DueDate = tt.due
			got := v.Validate(f)[FieldDueDate]
			if got != tt.want {
				t.Errorf("dueDate error = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValidateOptionalFields(t *testing.T) {
	v := newTestValidator()

	t.Run("description", func(t *testing.T) {
		f := validCreateForm()
		f.Description = strings.Repeat("x", 501)
		if got := v.Validate(f)[FieldDescription]; got != "La descripción no puede exceder los 500 caracteres." {
			t.Errorf("description error = %q", got)
		}

		f.Description = ""
		if v.Validate(f).Has(FieldDescription) {
			t.Error("empty description must be treated as absent")
		}
	})

	t.Run("assignee", func(t *testing.T) {
		tests := []struct {
			id    string
			valid bool
		}{
			{"", true},
			{testGUID, true},
			{strings.ToUpper(testGUID), true},
			{"123", false},
			{"a1b2c3d4e5f67890abcdef1234567890", false},
			{"{" + testGUID + "}", false},
			{"g1b2c3d4-e5f6-7890-abcd-ef1234567890", false},
		}
		for _, tt := range tests {
			f := validCreateForm()
			f.AssignedToUserID = tt.id
			errs := v.Validate(f)
			if errs.Has(FieldAssignedToUserID) == tt.valid {
				t.Errorf("assignee %q: errors %v, want valid=%v", tt.id, errs, tt.valid)
			}
			if !tt.valid && errs[FieldAssignedToUserID] != "El ID de usuario asignado debe ser un formato GUID válido." {
				t.Errorf("assignee %q: message %q", tt.id, errs[FieldAssignedToUserID])
			}
		}
	})
}

func TestValidateEditModeStatusPriority(t *testing.T) {
	v := newTestValidator()

	t.Run("missing both", func(t *testing.T) {
		f := validEditForm()
		f.Status = ""
		f.Priority = ""

		want := forms.FieldErrors{
			FieldStatus:   "El estado es requerido.",
			FieldPriority: "La prioridad es requerida.",
		}
		if got := v.Validate(f); !reflect.DeepEqual(got, want) {
			t.Errorf("errors = %v, want %v", got, want)
		}
	})

	t.Run("missing plus other invalid field", func(t *testing.T) {
		f := validEditForm()
		f.Status = ""
		f.Title = ""

		got := v.Validate(f)
		if !reflect.DeepEqual(got.Fields(), []string{FieldStatus, FieldTitle}) {
			t.Errorf("fields = %v", got.Fields())
		}
	})

	t.Run("not enum members", func(t *testing.T) {
		f := validEditForm()
		f.Status = "Done"
		f.Priority = "urgent"

		got := v.Validate(f)
		if got[FieldStatus] != "Estado inválido." || got[FieldPriority] != "Prioridad inválida." {
			t.Errorf("errors = %v", got)
		}
	})

	t.Run("every enum member", func(t *testing.T) {
		for _, s := range Statuses {
			for _, p := range Priorities {
				f := validEditForm()
				f.Status, f.Priority = s, p
				if errs := v.Validate(f); !errs.Valid() {
					t.Errorf("%s/%s: unexpected errors %v", s, p, errs)
				}
			}
		}
	})

	t.Run("create mode never checks status", func(t *testing.T) {
		edit := validEditForm()
		edit.Status = ""
		create := CreateForm{TaskFields: edit.TaskFields}

		if errs := v.Validate(create); errs.Has(FieldStatus) || errs.Has(FieldPriority) {
			t.Errorf("create form reported mode fields: %v", errs)
		}
		if errs := v.Validate(edit); !errs.Has(FieldStatus) {
			t.Errorf("edit form must report status: %v", errs)
		}
	})
}

func TestValidateIsIdempotent(t *testing.T) {
	v := newTestValidator()

	f := validEditForm()
	f.Title = "Fix <script>"
	f.DueDate = "2026-10-01"
	f.AssignedToUserID = "123"
	f.Priority = ""

	first := v.Validate(f)
	second := v.Validate(f)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("first %v != second %v", first, second)
	}
	if len(first) != 4 {
		t.Errorf("expected 4 errors, got %v", first)
	}
}

func TestValidateUsesCurrentClock(t *testing.T) {
	now := fixedNow
	v := NewValidator(WithClock(func() time.Time { return now }))

	f := validCreateForm()
	f.DueDate = "2026-10-18"
	if !v.Validate(f).Valid() {
		t.Fatal("due today must be valid")
	}

	// Форма открыта вчера, а отправлена сегодня: граница - дата проверки.
	now = now.Add(24 * time.Hour)
	if got := v.Validate(f)[FieldDueDate]; got != "La fecha de vencimiento no puede ser anterior a hoy." {
		t.Errorf("dueDate error after midnight = %q", got)
	}
	if !v.Now().Equal(now) {
		t.Error("Now must use the injected clock")
	}
}

func TestValidateField(t *testing.T) {
	v := newTestValidator()

	f := validCreateForm()
	f.Title = ""
	f.DueDate = ""

	got := v.ValidateField(f, FieldTitle)
	if len(got) != 1 || !got.Has(FieldTitle) {
		t.Errorf("ValidateField = %v", got)
	}
	if got := v.ValidateField(f, FieldDescription); len(got) != 0 {
		t.Errorf("ValidateField for valid field = %v", got)
	}
}

// TestValidateWellFormedCreateForms перебирает случайные корректные формы.
func TestValidateWellFormedCreateForms(t *testing.T) {
	const alphabet = "abcXYZ019 .,;:_!?()&'-#"
	rnd := rand.New(rand.NewSource(42))
	v := newTestValidator()

	for i := 0; i < 200; i++ {
		var title strings.Builder
		title.WriteByte('T')
		for n := rnd.Intn(99); n > 0; n-- {
			title.WriteByte(alphabet[rnd.Intn(len(alphabet))])
		}

		f := CreateForm{TaskFields: TaskFields{
			ProjectID:   "p-1",
			Title:       title.String(),
			DueDate:     fixedNow.AddDate(0, 0, rnd.Intn(400)).Format(forms.DateLayout),
			Description: strings.Repeat("é", rnd.Intn(501)),
		}}
		if errs := v.Validate(f); !errs.Valid() {
			t.Fatalf("form %+v: unexpected errors %v", f, errs)
		}
	}
}
