package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"task-board/internal/forms"
	"task-board/internal/projects"
	"task-board/internal/tasks"
)

// printJSON печатает значение с отступами.
func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func dash(p *string) string {
	if s := forms.Value(p); s != "" {
		return s
	}
	return "-"
}

func (a *app) printProjects(w io.Writer, list []projects.ProjectDto) error {
	if a.asJSON {
		return printJSON(w, list)
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tSTART\tEND\tSTATUS")
	for _, p := range list {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			p.ID, p.Name, forms.DateOnly(p.StartDate), forms.DateOnly(dash(p.EndDate)), p.Status)
	}
	return tw.Flush()
}

func (a *app) printProject(w io.Writer, p *projects.ProjectDto) error {
	if a.asJSON {
		return printJSON(w, p)
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "ID:\t%s\n", p.ID)
	fmt.Fprintf(tw, "Name:\t%s\n", p.Name)
	fmt.Fprintf(tw, "Description:\t%s\n", dash(p.Description))
	fmt.Fprintf(tw, "Start:\t%s\n", forms.DateOnly(p.StartDate))
	fmt.Fprintf(tw, "End:\t%s\n", forms.DateOnly(dash(p.EndDate)))
	fmt.Fprintf(tw, "Status:\t%s\n", p.Status)
	return tw.Flush()
}

func (a *app) printTasks(w io.Writer, list []tasks.TaskItemDto) error {
	if a.asJSON {
		return printJSON(w, list)
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tDUE\tSTATUS\tPRIORITY\tASSIGNEE")
	for _, t := range list {
		assignee := dash(t.AssignedToUserName)
		if assignee == "-" {
			assignee = dash(t.AssignedToUserID)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			t.ID, t.Title, forms.DateOnly(t.DueDate), t.Status, t.Priority, assignee)
	}
	return tw.Flush()
}

func (a *app) printTask(w io.Writer, t *tasks.TaskItemDto) error {
	if a.asJSON {
		return printJSON(w, t)
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "ID:\t%s\n", t.ID)
	fmt.Fprintf(tw, "Project:\t%s %s\n", t.ProjectID, t.ProjectName)
	fmt.Fprintf(tw, "Title:\t%s\n", t.Title)
	fmt.Fprintf(tw, "Description:\t%s\n", dash(t.Description))
	fmt.Fprintf(tw, "Due:\t%s\n", forms.DateOnly(t.DueDate))
	fmt.Fprintf(tw, "Status:\t%s\n", t.Status)
	fmt.Fprintf(tw, "Priority:\t%s\n", t.Priority)
	fmt.Fprintf(tw, "Completed:\t%s\n", forms.DateOnly(dash(t.CompletionDate)))
	fmt.Fprintf(tw, "Assignee:\t%s\n", dash(t.AssignedToUserID))
	return tw.Flush()
}
