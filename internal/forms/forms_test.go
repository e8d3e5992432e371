package forms

import (
	"reflect"
	"testing"
	"time"
)

func TestDateOnly(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2025-12-31T00:00:00Z", "2025-12-31"},
		{"2025-12-31T23:59:59+03:00", "2025-12-31"},
		{"2025-12-31", "2025-12-31"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := DateOnly(tt.in); got != tt.want {
			t.Errorf("DateOnly(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNullable(t *testing.T) {
	if Nullable("") != nil {
		t.Error("expected nil for empty string")
	}
	p := Nullable("x")
	if p == nil || *p != "x" {
		t.Errorf("expected pointer to x, got %v", p)
	}
	if Value(nil) != "" {
		t.Error("expected empty value for nil")
	}
	if Value(p) != "x" {
		t.Errorf("expected x, got %q", Value(p))
	}

	iso := "2025-01-02T10:00:00Z"
	if got := NullableDate(&iso); got == nil || *got != "2025-01-02" {
		t.Errorf("NullableDate = %v, want 2025-01-02", got)
	}
	if NullableDate(nil) != nil {
		t.Error("expected nil date for nil input")
	}
}

func TestToday(t *testing.T) {
	now := time.Date(2026, 10, 18, 23, 30, 0, 0, time.UTC)
	if got := Today(now); got != "2026-10-18" {
		t.Errorf("Today = %q", got)
	}
}

func TestFieldErrors(t *testing.T) {
	errs := FieldErrors{"title": "bad", "dueDate": "late"}

	if errs.Valid() {
		t.Error("expected invalid")
	}
	if !(FieldErrors{}).Valid() {
		t.Error("expected empty map to be valid")
	}
	if !errs.Has("title") || errs.Has("description") {
		t.Error("Has reports wrong fields")
	}
	if got := errs.Fields(); !reflect.DeepEqual(got, []string{"dueDate", "title"}) {
		t.Errorf("Fields = %v", got)
	}
	if got := errs.Only("title"); !reflect.DeepEqual(got, FieldErrors{"title": "bad"}) {
		t.Errorf("Only = %v", got)
	}
	if got := errs.Only("priority"); len(got) != 0 {
		t.Errorf("Only for valid field = %v", got)
	}

}

func TestStruct(t *testing.T) {
	type payload struct {
		Name  string `json:"name" validate:"required,max=5"`
		Start string `json:"startDate" validate:"omitempty,datetime=2006-01-02"`
		Kind  string `json:"kind" validate:"omitempty,oneof=a b"`
	}
	v := NewValidate()
	msgs := Messages{"name": {"required": "name please"}}

	t.Run("custom and default messages", func(t *testing.T) {
		errs, err := Struct(v, payload{Start: "2025-02-30", Kind: "c"}, msgs)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := FieldErrors{
			"name":      "name please",
			"startDate": "El campo 'startDate' debe ser una fecha válida.",
			"kind":      "El campo 'kind' debe ser uno de: a b.",
		}
		if !reflect.DeepEqual(errs, want) {
			t.Errorf("errors = %v, want %v", errs, want)
		}
	})

	t.Run("param in default message", func(t *testing.T) {
		errs, err := Struct(v, payload{Name: "toolong"}, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if errs["name"] != "El campo 'name' no puede exceder los 5 caracteres." {
			t.Errorf("message = %q", errs["name"])
		}
	})

	t.Run("valid struct", func(t *testing.T) {
		errs, err := Struct(v, payload{Name: "ok", Start: "2025-01-01", Kind: "a"}, msgs)
		if err != nil || !errs.Valid() {
			t.Errorf("expected valid, got %v %v", errs, err)
		}
	})

	t.Run("not a struct", func(t *testing.T) {
		if _, err := Struct(v, 42, nil); err == nil {
			t.Error("expected error for non-struct input")
		}
	})
}
