package projects_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"

	"task-board/internal/apiclient"
	"task-board/internal/apitest"
	"task-board/internal/projects"
	"task-board/internal/tasks"
)

var today = time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)

func newService(t *testing.T) (*projects.Service, *apitest.Server) {
	t.Helper()

	api := apitest.NewServer(t)
	log, _ := test.NewNullLogger()
	transport, err := apiclient.New(api.URL, apiclient.WithLogger(log))
	if err != nil {
		t.Fatal(err)
	}
	return projects.NewService(projects.NewClient(transport), log), api
}

func TestNewEditForm(t *testing.T) {
	desc := "Rediseño"
	end := "2027-01-31T00:00:00Z"
	f := projects.NewEditForm(projects.ProjectDto{
		ID:          "p-1",
		Name:        "Web",
		Description: &desc,
		StartDate:   "2026-10-01T00:00:00Z",
		EndDate:     &end,
		Status:      "Active",
	})

	want := projects.EditForm{
		Fields: projects.Fields{
			Name:        "Web",
			Description: "Rediseño",
			StartDate:   "2026-10-01",
			EndDate:     "2027-01-31",
		},
		ID:     "p-1",
		Status: "Active",
	}
	if f != want {
		t.Errorf("form = %+v, want %+v", f, want)
	}
}

func TestCheck(t *testing.T) {
	svc, _ := newService(t)

	tests := []struct {
		name string
		form projects.FormState
		want []string
	}{
		{"valid create", projects.CreateForm{Fields: projects.Fields{Name: "Web", StartDate: "2026-10-01"}}, nil},
		{"default create form", projects.NewCreateForm(today), []string{projects.FieldName}},
		{"bad dates", projects.CreateForm{Fields: projects.Fields{Name: "Web", StartDate: "01/10/2026", EndDate: "mañana"}},
			[]string{projects.FieldEndDate, projects.FieldStartDate}},
		{"edit without id", projects.EditForm{Fields: projects.Fields{Name: "Web", StartDate: "2026-10-01"}}, []string{"id"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := svc.Check(tt.form).Fields()
			if len(got) != len(tt.want) {
				t.Fatalf("fields = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("fields = %v, want %v", got, tt.want)
				}
			}
		})
	}

	if msg := svc.Check(projects.CreateForm{})[projects.FieldName]; msg != "El nombre del proyecto es requerido." {
		t.Errorf("name message = %q", msg)
	}
}

func TestSubmitCreateAndUpdate(t *testing.T) {
	svc, api := newService(t)
	ctx := context.Background()

	form := projects.NewCreateForm(today)
	form.Name = "Web"

	created, errs, err := svc.Submit(ctx, form)
	if err != nil || !errs.Valid() {
		t.Fatalf("Submit create: errs=%v err=%v", errs, err)
	}
	if created == nil || created.ID == "" || created.Status != "Active" {
		t.Fatalf("created = %+v", created)
	}

	var body map[string]any
	_ = json.Unmarshal(api.RequestsTo(http.MethodPost, "/Projects")[0].Body, &body)
	if body["description"] != nil || body["endDate"] != nil || body["startDate"] != "2026-10-18" {
		t.Errorf("create body = %v", body)
	}

	edit := projects.NewEditForm(*created)
	edit.Name = "Web 2.0"
	edit.EndDate = "2027-03-01"
	if _, errs, err := svc.Submit(ctx, edit); err != nil || !errs.Valid() {
		t.Fatalf("Submit edit: errs=%v err=%v", errs, err)
	}

	got, err := svc.Get(ctx, created.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Name != "Web 2.0" || got.EndDate == nil || *got.EndDate != "2027-03-01T00:00:00Z" || got.Status != "Active" {
		t.Errorf("updated = %+v", got)
	}
}

func TestSubmitInvalidDoesNotCallAPI(t *testing.T) {
	svc, api := newService(t)

	_, errs, err := svc.Submit(context.Background(), projects.NewCreateForm(today))
	if err != nil || errs.Valid() {
		t.Fatalf("errs=%v err=%v", errs, err)
	}
	if n := len(api.Requests()); n != 0 {
		t.Errorf("api received %d requests", n)
	}
}

func TestListAndDeleteCascades(t *testing.T) {
	svc, api := newService(t)
	ctx := context.Background()

	p := api.Store().AddProject(projects.ProjectDto{Name: "A", StartDate: "2026-10-01T00:00:00Z", Status: "Active"})
	api.Store().AddProject(projects.ProjectDto{Name: "B", StartDate: "2026-10-01T00:00:00Z", Status: "Active"})
	api.Store().AddTask(tasks.TaskItemDto{ProjectID: p.ID, Title: "T", Status: tasks.StatusPending, Priority: tasks.PriorityLow})

	list, err := svc.List(ctx)
	if err != nil || len(list) != 2 {
		t.Fatalf("List = %v, %v", list, err)
	}

	if err := svc.Delete(ctx, p.ID); err != nil {
		t.Fatal(err)
	}
	if got := api.Store().TasksByProject(p.ID); len(got) != 0 {
		t.Errorf("tasks of deleted project = %v", got)
	}
	if _, err := svc.Get(ctx, p.ID); !apiclient.IsNotFound(err) {
		t.Errorf("Get deleted err = %v", err)
	}
	if msg := apiclient.Message(svc.Delete(ctx, p.ID)); msg != "Proyecto no encontrado." {
		t.Errorf("Delete missing message = %q", msg)
	}
}
