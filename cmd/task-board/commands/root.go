// Package commands - CLI task-board на cobra.
//
// Корневая команда читает конфигурацию и собирает зависимости
// (логгер, транспорт, сервисы) перед запуском любой подкоманды.
package commands

import (
	"errors"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"task-board/internal/apiclient"
	"task-board/internal/config"
	"task-board/internal/forms"
	"task-board/internal/logging"
	"task-board/internal/projects"
	"task-board/internal/tasks"
)

// errInvalid - форма не прошла валидацию, ошибки полей уже напечатаны.
var errInvalid = errors.New("validation failed")

// app - зависимости, общие для подкоманд.
type app struct {
	configPath string
	apiURL     string
	asJSON     bool

	loader   *config.Loader
	cfg      *config.Config
	log      *logrus.Logger
	cleanup  func()
	projects *projects.Service
	tasks    *tasks.Service
}

// Execute собирает корневую команду и выполняет её с аргументами os.Args.
func Execute() error {
	a := &app{}
	return execute(a, newRootCmd(a))
}

// execute закрывает выход логгера и тогда, когда подкоманда вернула
// ошибку: cobra в этом случае не вызывает PersistentPostRun.
func execute(a *app, cmd *cobra.Command) error {
	defer a.close()
	return cmd.Execute()
}

// newRootCmd создаёт корневую команду; зависимости собираются в a.
func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "task-board",
		Short:         "Projects and tasks front-end for the task REST API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "path to config.yaml")
	flags.StringVar(&a.apiURL, "api-url", "", "REST API base URL (overrides api.base_url)")
	flags.BoolVar(&a.asJSON, "json", false, "print results as JSON")

	rootCmd.AddCommand(
		newServeCommand(a),
		newProjectsCommand(a),
		newTasksCommand(a),
	)
	return rootCmd
}

func (a *app) setup() error {
	loader, err := config.NewLoader(a.configPath)
	if err != nil {
		return err
	}
	// Копия: флаги не должны менять конфигурацию внутри loader.
	c := *loader.Config()
	cfg := &c
	if a.apiURL != "" {
		cfg.API.BaseURL = a.apiURL
	}

	log, cleanup, err := logging.New(cfg.Logger)
	if err != nil {
		return err
	}

	transport, err := apiclient.New(cfg.API.BaseURL,
		apiclient.WithTimeout(cfg.API.Timeout),
		apiclient.WithLogger(log),
		apiclient.WithBreaker(apiclient.BreakerSettings{
			MaxRequests:  cfg.API.Breaker.MaxRequests,
			Interval:     cfg.API.Breaker.Interval,
			Timeout:      cfg.API.Breaker.Timeout,
			MinRequests:  cfg.API.Breaker.MinRequests,
			FailureRatio: cfg.API.Breaker.FailureRatio,
		}),
	)
	if err != nil {
		cleanup()
		return err
	}

	a.loader = loader
	a.cfg = cfg
	a.log = log
	a.cleanup = cleanup
	a.projects = projects.NewService(projects.NewClient(transport), log)
	a.tasks = tasks.NewService(tasks.NewClient(transport), tasks.NewValidator(), log)
	return nil
}

// close освобождает ресурсы логгера; повторный вызов ничего не делает.
func (a *app) close() {
	if a.cleanup != nil {
		a.cleanup()
		a.cleanup = nil
	}
}

// printFieldErrors печатает ошибки полей по одной на строку, по алфавиту.
func printFieldErrors(w io.Writer, errs forms.FieldErrors) error {
	for _, f := range errs.Fields() {
		fmt.Fprintf(w, "%s: %s\n", f, errs[f])
	}
	return errInvalid
}
