package apitest

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"task-board/internal/forms"
	"task-board/internal/projects"
	"task-board/internal/tasks"
)

// errProjectNotFound - задача ссылается на несуществующий проект.
var errProjectNotFound = errors.New("project not found")

// Store - in-memory хранилище поддельного API.
//
// Хранилище потокобезопасно: операции чтения/записи защищены RWMutex.
// Изменения готовятся на копии списка и только потом подменяют текущий.
type Store struct {
	mu       sync.RWMutex
	projects []projects.ProjectDto
	tasks    []tasks.TaskItemDto
	now      func() time.Time
}

// NewStore создаёт пустое хранилище.
func NewStore(now func() time.Time) *Store {
	if now == nil {
		now = time.Now
	}
	return &Store{now: now}
}

// isoDate переводит YYYY-MM-DD в ISO 8601 так, как это делает настоящий API.
func isoDate(date string) string {
	if date == "" {
		return ""
	}
	return forms.DateOnly(date) + "T00:00:00Z"
}

func isoDatePtr(date *string) *string {
	if date == nil {
		return nil
	}
	return forms.Nullable(isoDate(*date))
}

func (s *Store) stamp() string {
	return s.now().UTC().Format(time.RFC3339)
}

// AddProject кладёт проект как есть (id генерируется, если пуст).
func (s *Store) AddProject(p projects.ProjectDto) projects.ProjectDto {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	s.projects = append(s.projects, p)
	return p
}

// AddTask кладёт задачу как есть (id генерируется, если пуст).
func (s *Store) AddTask(t tasks.TaskItemDto) tasks.TaskItemDto {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	s.tasks = append(s.tasks, t)
	return t
}

// Projects возвращает копию списка проектов.
func (s *Store) Projects() []projects.ProjectDto {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]projects.ProjectDto, len(s.projects))
	copy(out, s.projects)
	return out
}

// Project возвращает проект по id.
func (s *Store) Project(id string) (projects.ProjectDto, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.projectIndex(id); i >= 0 {
		return s.projects[i], true
	}
	return projects.ProjectDto{}, false
}

// Task возвращает задачу по id.
func (s *Store) Task(id string) (tasks.TaskItemDto, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.taskIndex(id); i >= 0 {
		return s.tasks[i], true
	}
	return tasks.TaskItemDto{}, false
}

// TasksByProject возвращает задачи проекта.
func (s *Store) TasksByProject(projectID string) []tasks.TaskItemDto {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []tasks.TaskItemDto{}
	for _, t := range s.tasks {
		if t.ProjectID == projectID {
			out = append(out, t)
		}
	}
	return out
}

// CreateProject создаёт проект со статусом по умолчанию.
func (s *Store) CreateProject(cmd projects.CreateProjectCommand) projects.ProjectDto {
	return s.AddProject(projects.ProjectDto{
		Name:        cmd.Name,
		Description: cmd.Description,
		StartDate:   isoDate(cmd.StartDate),
		EndDate:     isoDatePtr(cmd.EndDate),
		Status:      "Active",
	})
}

// UpdateProject обновляет проект. false - проекта нет.
func (s *Store) UpdateProject(id string, cmd projects.UpdateProjectCommand) (projects.ProjectDto, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.projectIndex(id)
	if i == -1 {
		return projects.ProjectDto{}, false
	}

	updated := s.projects[i]
	updated.Name = cmd.Name
	updated.Description = cmd.Description
	updated.StartDate = isoDate(cmd.StartDate)
	updated.EndDate = isoDatePtr(cmd.EndDate)
	if cmd.Status != "" {
		updated.Status = cmd.Status
	}

	candidate := make([]projects.ProjectDto, len(s.projects))
	copy(candidate, s.projects)
	candidate[i] = updated
	s.projects = candidate
	return updated, true
}

// DeleteProject удаляет проект вместе с его задачами.
func (s *Store) DeleteProject(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.projectIndex(id)
	if i == -1 {
		return false
	}

	candidate := make([]projects.ProjectDto, 0, len(s.projects)-1)
	candidate = append(candidate, s.projects[:i]...)
	candidate = append(candidate, s.projects[i+1:]...)
	s.projects = candidate

	kept := make([]tasks.TaskItemDto, 0, len(s.tasks))
	for _, t := range s.tasks {
		if t.ProjectID != id {
			kept = append(kept, t)
		}
	}
	s.tasks = kept
	return true
}

// CreateTask создаёт задачу: статус Pending, приоритет Medium.
func (s *Store) CreateTask(cmd tasks.CreateTaskCommand) (tasks.TaskItemDto, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pi := s.projectIndex(cmd.ProjectID)
	if pi == -1 {
		return tasks.TaskItemDto{}, errProjectNotFound
	}

	now := s.stamp()
	created := tasks.TaskItemDto{
		ID:               uuid.NewString(),
		ProjectID:        cmd.ProjectID,
		ProjectName:      s.projects[pi].Name,
		Title:            cmd.Title,
		Description:      cmd.Description,
		DueDate:          isoDate(cmd.DueDate),
		Status:           tasks.StatusPending,
		Priority:         tasks.PriorityMedium,
		AssignedToUserID: cmd.AssignedToUserID,
		CreationDate:     now,
		LastModifiedDate: now,
	}

	candidate := make([]tasks.TaskItemDto, 0, len(s.tasks)+1)
	candidate = append(candidate, s.tasks...)
	candidate = append(candidate, created)
	s.tasks = candidate
	return created, nil
}

// UpdateTask обновляет задачу. false - задачи нет.
func (s *Store) UpdateTask(id string, cmd tasks.UpdateTaskCommand) (tasks.TaskItemDto, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.taskIndex(id)
	if i == -1 {
		return tasks.TaskItemDto{}, false
	}

	updated := s.tasks[i]
	updated.Title = cmd.Title
	updated.Description = cmd.Description
	updated.DueDate = isoDate(cmd.DueDate)
	updated.Status = cmd.Status
	updated.Priority = cmd.Priority
	updated.CompletionDate = isoDatePtr(cmd.CompletionDate)
	updated.AssignedToUserID = cmd.AssignedToUserID
	updated.LastModifiedDate = s.stamp()

	candidate := make([]tasks.TaskItemDto, len(s.tasks))
	copy(candidate, s.tasks)
	candidate[i] = updated
	s.tasks = candidate
	return updated, true
}

// DeleteTask удаляет задачу. false - задачи нет.
func (s *Store) DeleteTask(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.taskIndex(id)
	if i == -1 {
		return false
	}

	candidate := make([]tasks.TaskItemDto, 0, len(s.tasks)-1)
	candidate = append(candidate, s.tasks[:i]...)
	candidate = append(candidate, s.tasks[i+1:]...)
	s.tasks = candidate
	return true
}

func (s *Store) projectIndex(id string) int {
	for i := range s.projects {
		if s.projects[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) taskIndex(id string) int {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}
