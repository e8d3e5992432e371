package tasks

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"task-board/internal/forms"
)

var (
	// ErrMissingProject - форма создания без проекта.
	ErrMissingProject = errors.New("task project is unknown")
	// ErrMissingID - форма редактирования без id задачи.
	ErrMissingID = errors.New("task id is unknown")
	// ErrInvalidStatus - статус не из перечисления.
	ErrInvalidStatus = errors.New("invalid task status")
)

// Service - сценарии работы с задачами поверх Client.
//
// Главное правило: команда строится только из формы без ошибок валидации,
// а ошибки валидации никогда не доходят до сети.
type Service struct {
	client    *Client
	validator *Validator
	log       logrus.FieldLogger
}

// NewService создаёт сервис задач.
func NewService(client *Client, validator *Validator, log logrus.FieldLogger) *Service {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Service{client: client, validator: validator, log: log}
}

// Validator возвращает валидатор сервиса (для проверки полей "на лету").
func (s *Service) Validator() *Validator {
	return s.validator
}

// ListByProject возвращает задачи проекта.
func (s *Service) ListByProject(ctx context.Context, projectID string) ([]TaskItemDto, error) {
	// Незачем идти в сеть, если запрос уже отменён.
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.client.ListByProject(ctx, projectID)
}

// Get возвращает задачу по id.
func (s *Service) Get(ctx context.Context, id string) (*TaskItemDto, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.client.Get(ctx, id)
}

// Submit валидирует форму и, если ошибок нет, отправляет команду:
// CreateForm -> POST, EditForm -> PUT.
//
// Возвращает ошибки полей (и тогда запрос не отправляется) либо результат
// API. Результат может быть nil, если API ответило без тела.
func (s *Service) Submit(ctx context.Context, state FormState) (*TaskItemDto, forms.FieldErrors, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	if errs := s.validator.Validate(state); !errs.Valid() {
		s.log.WithField("fields", errs.Fields()).Debug("task form rejected")
		return nil, errs, nil
	}

	switch cmd := ToCommand(state).(type) {
	case CreateTaskCommand:
		if cmd.ProjectID == "" {
			return nil, nil, ErrMissingProject
		}
		task, err := s.client.Create(ctx, cmd)
		if err != nil {
			return nil, nil, err
		}
		s.log.WithField("project_id", cmd.ProjectID).Info("task created")
		return task, nil, nil

	case UpdateTaskCommand:
		if cmd.ID == "" {
			return nil, nil, ErrMissingID
		}
		task, err := s.client.Update(ctx, cmd.ID, cmd)
		if err != nil {
			return nil, nil, err
		}
		s.log.WithField("task_id", cmd.ID).Info("task updated")
		return task, nil, nil

	default:
		return nil, nil, fmt.Errorf("unsupported form state %T", state)
	}
}

// ChangeStatus меняет статус задачи.
//
// Если статус не изменился, запрос не отправляется и возвращается false.
func (s *Service) ChangeStatus(ctx context.Context, task TaskItemDto, status TaskStatus) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if !status.Valid() {
		return false, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	if task.Status == status {
		return false, nil
	}

	if _, err := s.client.ChangeStatus(ctx, task, status); err != nil {
		return false, err
	}
	s.log.WithFields(logrus.Fields{
		"task_id": task.ID,
		"from":    task.Status,
		"to":      status,
	}).Info("task status changed")
	return true, nil
}

// Assign назначает задаче исполнителя, пустой userID снимает назначение.
//
// userID проверяется тем же правилом, что и поле формы задачи: при ошибке
// возвращаются FieldErrors, а запрос не отправляется.
func (s *Service) Assign(ctx context.Context, task TaskItemDto, userID string) (forms.FieldErrors, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	form := NewEditForm(task)
	form.AssignedToUserID = userID
	if errs := s.validator.ValidateField(form, FieldAssignedToUserID); !errs.Valid() {
		return errs, nil
	}

	if _, err := s.client.Assign(ctx, task, forms.Nullable(userID)); err != nil {
		return nil, err
	}
	s.log.WithField("task_id", task.ID).Info("task assignee changed")
	return nil, nil
}

// Delete удаляет задачу.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.client.Delete(ctx, id); err != nil {
		return err
	}
	s.log.WithField("task_id", id).Info("task deleted")
	return nil
}
