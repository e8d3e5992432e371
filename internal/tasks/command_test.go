package tasks

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestCreateFormCommand(t *testing.T) {
	f := CreateForm{TaskFields: TaskFields{
		ProjectID: "p-1",
		Title:     "Preparar informe",
		DueDate:   "2026-10-20",
	}}

	cmd, ok := ToCommand(f).(CreateTaskCommand)
	if !ok {
		t.Fatalf("ToCommand(CreateForm) = %T", ToCommand(f))
	}

	want := CreateTaskCommand{ProjectID: "p-1", Title: "Preparar informe", DueDate: "2026-10-20"}
	if !reflect.DeepEqual(cmd, want) {
		t.Errorf("cmd = %+v, want %+v", cmd, want)
	}

	// Пустые необязательные поля уходят как null, а не как "".
	body, err := json.Marshal(cmd)
	if err != nil {
		t.Fatal(err)
	}
	const wantJSON = `{"projectId":"p-1","title":"Preparar informe","description":null,"dueDate":"2026-10-20","assignedToUserId":null}`
	if string(body) != wantJSON {
		t.Errorf("json = %s\nwant %s", body, wantJSON)
	}
}

func TestCreateFormCommandOptionalFields(t *testing.T) {
	f := &CreateForm{TaskFields: TaskFields{
		ProjectID:        "p-1",
		Title:            "T",
		Description:      "desc",
		DueDate:          "2026-10-20",
		AssignedToUserID: testGUID,
	}}

	cmd := ToCommand(f).(CreateTaskCommand)
	if cmd.Description == nil || *cmd.Description != "desc" {
		t.Errorf("Description = %v", cmd.Description)
	}
	if cmd.AssignedToUserID == nil || *cmd.AssignedToUserID != testGUID {
		t.Errorf("AssignedToUserID = %v", cmd.AssignedToUserID)
	}
}

func TestEditFormCommand(t *testing.T) {
	f := EditForm{
		TaskFields: TaskFields{
			ProjectID:        "p-1",
			Title:            "Editada",
			Description:      "",
			DueDate:          "2026-10-20",
			AssignedToUserID: testGUID,
		},
		ID:             "t-1",
		Status:         StatusCompleted,
		Priority:       PriorityLow,
		CompletionDate: "2026-10-19",
	}

	cmd, ok := ToCommand(f).(UpdateTaskCommand)
	if !ok {
		t.Fatalf("ToCommand(EditForm) = %T", ToCommand(f))
	}

	want := UpdateTaskCommand{
		ID:               "t-1",
		ProjectID:        "p-1",
		Title:            "Editada",
		DueDate:          "2026-10-20",
		Status:           StatusCompleted,
		Priority:         PriorityLow,
		CompletionDate:   strPtr("2026-10-19"),
		AssignedToUserID: strPtr(testGUID),
	}
	if !reflect.DeepEqual(cmd, want) {
		t.Errorf("cmd = %+v, want %+v", cmd, want)
	}
}

func TestEditFormRoundTrip(t *testing.T) {
	dto := TaskItemDto{
		ID:               "t-1",
		ProjectID:        "p-1",
		ProjectName:      "Lanzamiento",
		Title:            "Fix bug #42 (urgent)!",
		Description:      strPtr("Reproducir primero"),
		DueDate:          "2026-12-01T00:00:00Z",
		Status:           StatusPending,
		Priority:         PriorityHigh,
		AssignedToUserID: strPtr(testGUID),
		CreationDate:     "2026-10-01T10:00:00Z",
		LastModifiedDate: "2026-10-02T10:00:00Z",
	}

	cmd := ToCommand(NewEditForm(dto)).(UpdateTaskCommand)

	if cmd.ID != dto.ID || cmd.ProjectID != dto.ProjectID || cmd.Title != dto.Title {
		t.Errorf("identity fields changed: %+v", cmd)
	}
	if cmd.Status != dto.Status || cmd.Priority != dto.Priority {
		t.Errorf("status/priority changed: %+v", cmd)
	}
	if *cmd.Description != *dto.Description || *cmd.AssignedToUserID != *dto.AssignedToUserID {
		t.Errorf("optional fields changed: %+v", cmd)
	}
	if cmd.DueDate != "2026-12-01" {
		t.Errorf("DueDate = %q, want date part only", cmd.DueDate)
	}
	if cmd.CompletionDate != nil {
		t.Errorf("CompletionDate = %v, want nil", *cmd.CompletionDate)
	}
}

func TestToCommandUnknownState(t *testing.T) {
	if cmd := ToCommand(nil); cmd != nil {
		t.Errorf("ToCommand(nil) = %v", cmd)
	}
}
