package tasks

import (
	"errors"
	"testing"
	"time"
)

func strPtr(s string) *string { return &s }

func TestNewCreateForm(t *testing.T) {
	now := time.Date(2026, 10, 18, 23, 30, 0, 0, time.UTC)
	f := NewCreateForm("p-7", now)

	if f.ProjectID != "p-7" {
		t.Errorf("ProjectID = %q", f.ProjectID)
	}
	if f.DueDate != "2026-10-18" {
		t.Errorf("DueDate = %q, want today", f.DueDate)
	}
	if f.Title != "" || f.Description != "" || f.AssignedToUserID != "" {
		t.Errorf("unexpected prefilled fields: %+v", f)
	}
}

func TestNewEditForm(t *testing.T) {
	dto := TaskItemDto{
		ID:               "t-1",
		ProjectID:        "p-1",
		Title:            "Revisar contrato",
		Description:      strPtr("Con el equipo legal"),
		DueDate:          "2026-11-02T00:00:00Z",
		Status:           StatusInProgress,
		Priority:         PriorityLow,
		CompletionDate:   strPtr("2026-11-01T15:04:05"),
		AssignedToUserID: strPtr(testGUID),
	}

	f := NewEditForm(dto)

	want := EditForm{
		TaskFields: TaskFields{
			ProjectID:        "p-1",
			Title:            "Revisar contrato",
			Description:      "Con el equipo legal",
			DueDate:          "2026-11-02",
			AssignedToUserID: testGUID,
		},
		ID:             "t-1",
		Status:         StatusInProgress,
		Priority:       PriorityLow,
		CompletionDate: "2026-11-01",
	}
	if f != want {
		t.Errorf("NewEditForm = %+v, want %+v", f, want)
	}

	empty := NewEditForm(TaskItemDto{ID: "t-2", DueDate: "2026-11-02"})
	if empty.Description != "" || empty.AssignedToUserID != "" || empty.CompletionDate != "" {
		t.Errorf("absent optional fields must become empty strings: %+v", empty)
	}
}

func TestSetField(t *testing.T) {
	t.Run("create form shared fields", func(t *testing.T) {
		var state FormState = CreateForm{}
		var err error
		for field, value := range map[string]string{
			FieldProjectID:        "p-1",
			FieldTitle:            "Nueva",
			FieldDescription:      "desc",
			FieldDueDate:          "2026-10-20",
			FieldAssignedToUserID: testGUID,
		} {
			state, err = SetField(state, field, value)
			if err != nil {
				t.Fatalf("SetField(%s): %v", field, err)
			}
		}

		f, ok := state.(CreateForm)
		if !ok {
			t.Fatalf("state type = %T", state)
		}
		if f.ProjectID != "p-1" || f.Title != "Nueva" || f.Description != "desc" ||
			f.DueDate != "2026-10-20" || f.AssignedToUserID != testGUID {
			t.Errorf("form = %+v", f)
		}
	})

	t.Run("create form rejects edit fields", func(t *testing.T) {
		for _, field := range []string{FieldStatus, FieldPriority, FieldID, FieldCompletionDate, "bogus"} {
			_, err := SetField(CreateForm{}, field, "x")
			if !errors.Is(err, ErrUnknownField) {
				t.Errorf("SetField(%s) err = %v, want ErrUnknownField", field, err)
			}
		}
	})

	t.Run("edit form fields", func(t *testing.T) {
		state, err := SetField(EditForm{}, FieldStatus, "Completed")
		if err != nil {
			t.Fatal(err)
		}
		state, _ = SetField(state, FieldPriority, "High")
		state, _ = SetField(state, FieldCompletionDate, "2026-10-19")
		state, _ = SetField(state, FieldTitle, "Editada")

		f := state.(EditForm)
		if f.Status != StatusCompleted || f.Priority != PriorityHigh ||
			f.CompletionDate != "2026-10-19" || f.Title != "Editada" {
			t.Errorf("form = %+v", f)
		}

		if _, err := SetField(f, "bogus", "x"); !errors.Is(err, ErrUnknownField) {
			t.Errorf("unknown field err = %v", err)
		}
	})

	t.Run("source form is not modified", func(t *testing.T) {
		orig := EditForm{TaskFields: TaskFields{Title: "A"}}
		_, _ = SetField(orig, FieldTitle, "B")
		if orig.Title != "A" {
			t.Errorf("source form changed: %+v", orig)
		}

		p := &CreateForm{TaskFields: TaskFields{Title: "A"}}
		next, err := SetField(p, FieldTitle, "B")
		if err != nil {
			t.Fatal(err)
		}
		if p.Title != "A" || next.(CreateForm).Title != "B" {
			t.Errorf("pointer form: orig %+v next %+v", p, next)
		}
	})
}
