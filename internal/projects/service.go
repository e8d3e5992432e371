package projects

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"task-board/internal/forms"
)

// Service - сценарии работы с проектами.
type Service struct {
	client   *Client
	validate *validator.Validate
	log      logrus.FieldLogger
}

// NewService создаёт сервис проектов.
func NewService(client *Client, log logrus.FieldLogger) *Service {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Service{client: client, validate: forms.NewValidate(), log: log}
}

// List возвращает все проекты.
func (s *Service) List(ctx context.Context) ([]ProjectDto, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.client.List(ctx)
}

// Get возвращает проект по id.
func (s *Service) Get(ctx context.Context, id string) (*ProjectDto, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.client.Get(ctx, id)
}

// Check проверяет команду, собранную из формы.
func (s *Service) Check(state FormState) forms.FieldErrors {
	var cmd any
	switch f := state.(type) {
	case CreateForm:
		c := f.Command()
		cmd = &c
	case EditForm:
		c := f.Command()
		cmd = &c
	default:
		panic(fmt.Sprintf("projects: unsupported form state %T", state))
	}

	errs, err := forms.Struct(s.validate, cmd, messages)
	if err != nil {
		panic(fmt.Sprintf("projects: validate command: %v", err))
	}
	return errs
}

// Submit проверяет форму и отправляет команду создания или обновления.
func (s *Service) Submit(ctx context.Context, state FormState) (*ProjectDto, forms.FieldErrors, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	if errs := s.Check(state); !errs.Valid() {
		return nil, errs, nil
	}

	switch f := state.(type) {
	case CreateForm:
		p, err := s.client.Create(ctx, f.Command())
		if err != nil {
			return nil, nil, err
		}
		s.log.WithField("name", f.Name).Info("project created")
		return p, nil, nil
	case EditForm:
		p, err := s.client.Update(ctx, f.ID, f.Command())
		if err != nil {
			return nil, nil, err
		}
		s.log.WithField("project_id", f.ID).Info("project updated")
		return p, nil, nil
	default:
		return nil, nil, fmt.Errorf("unsupported form state %T", state)
	}
}

// Delete удаляет проект.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.client.Delete(ctx, id); err != nil {
		return err
	}
	s.log.WithField("project_id", id).Info("project deleted")
	return nil
}
