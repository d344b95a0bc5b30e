package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/todolist/internal/model"
	"github.com/idilsaglam/todolist/internal/query"
	"github.com/idilsaglam/todolist/internal/ui"
)

func newListCommand(opts *rootOptions) *cobra.Command {
	var (
		filter string
		group  bool
	)
	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List todos",
		Args:    usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, func(ctx context.Context, s *session, out io.Writer) error {
				f := query.ParseFilter(strings.ToLower(filter))
				if f.Kind == query.Project {
					id, err := projectID(s.app, filter)
					if err != nil {
						return err
					}
					f = query.ProjectFilter(id)
				}
				s.app.SetFilter(f)

				r := ui.PanelRenderer{Out: out, Theme: s.theme, Group: group || opts.cfg.UI.Group}
				r.Render(s.app.View())
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&filter, "filter", "all", "all, today, week, or a project id or name")
	cmd.Flags().BoolVar(&group, "group", false, "group output by pending/done")
	return cmd
}

func newAddCommand(opts *rootOptions) *cobra.Command {
	var desc, due, priority, project string
	cmd := &cobra.Command{
		Use:   "add <title...>",
		Short: "Add a todo (the title can be several words)",
		Args:  usageArgs(cobra.MinimumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			title := strings.TrimSpace(strings.Join(args, " "))
			if title == "" {
				return usagef("add: empty title")
			}
			dueDate, err := model.ParseDate(due)
			if err != nil {
				return usageError{err}
			}
			prio, err := model.ParsePriority(priority)
			if err != nil {
				return usageError{err}
			}

			return opts.run(cmd, func(ctx context.Context, s *session, out io.Writer) error {
				pid := model.DefaultProject
				if project != "" {
					if pid, err = projectID(s.app, project); err != nil {
						return err
					}
				}
				it := s.app.AddTodo(ctx, model.TodoFields{
					Title:       title,
					Description: strings.TrimSpace(desc),
					DueDate:     dueDate,
					Priority:    prio,
					Project:     pid,
				})
				s.theme.OK(out, "added "+it.Title)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&desc, "desc", "", "description")
	cmd.Flags().StringVar(&due, "due", "", "due date, YYYY-MM-DD")
	cmd.Flags().StringVar(&priority, "priority", string(model.PriorityMedium), "low, medium or high")
	cmd.Flags().StringVar(&project, "project", "", "project id or name")
	_ = cmd.RegisterFlagCompletionFunc("priority", completePriority)
	return cmd
}

func completePriority(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	var out []string
	for _, p := range model.Priorities {
		if strings.HasPrefix(string(p), strings.ToLower(toComplete)) {
			out = append(out, string(p))
		}
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}

func newDoneCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "done <ref>",
		Short: "Toggle a todo between pending and done",
		Long:  "Toggle a todo. <ref> is its number in `todo ls`, its id, or a unique id prefix.",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, func(ctx context.Context, s *session, out io.Writer) error {
				it, err := resolveTodo(s.app, args[0])
				if err != nil {
					return err
				}
				if !s.app.ToggleTodo(ctx, it.ID) {
					return notFound("todo", args[0])
				}
				if it.Completed {
					s.theme.OK(out, "reopened "+it.Title)
				} else {
					s.theme.OK(out, "completed "+it.Title)
				}
				return nil
			})
		},
	}
}

func newRemoveCommand(opts *rootOptions) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "rm <ref>",
		Short: "Remove a todo",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, func(ctx context.Context, s *session, out io.Writer) error {
				it, err := resolveTodo(s.app, args[0])
				if err != nil {
					return err
				}
				if !yes && !confirm(cmd.InOrStdin(), out, fmt.Sprintf("Delete %q?", it.Title)) {
					fmt.Fprintln(out, "cancelled")
					return nil
				}
				if !s.app.DeleteTodo(ctx, it.ID) {
					return notFound("todo", args[0])
				}
				s.theme.OK(out, "removed "+it.Title)
				return nil
			})
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}

func newShowCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show <ref>",
		Short: "Show every detail of a todo",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, func(ctx context.Context, s *session, out io.Writer) error {
				it, err := resolveTodo(s.app, args[0])
				if err != nil {
					return err
				}
				fmt.Fprintln(out, s.theme.Panel(s.theme.DetailLines(it)))
				return nil
			})
		},
	}
}

// confirm asks a yes/no question on in. Anything but y or yes is a no.
func confirm(in io.Reader, out io.Writer, question string) bool {
	fmt.Fprintf(out, "%s [y/N] ", question)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}
