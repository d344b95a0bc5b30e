package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/todolist/internal/app"
)

func newProjectCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "project",
		Aliases: []string{"projects"},
		Short:   "Manage projects",
		Args:    usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return usagef("project: missing subcommand")
		},
	}
	cmd.AddCommand(newProjectListCommand(opts))
	cmd.AddCommand(newProjectAddCommand(opts))
	cmd.AddCommand(newProjectRemoveCommand(opts))
	return cmd
}

func newProjectListCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "ls",
		Short: "List projects with their pending todos",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, func(ctx context.Context, s *session, out io.Writer) error {
				fmt.Fprintln(out, s.theme.Panel(s.theme.ProjectLines(s.app.Projects())))
				return nil
			})
		},
	}
}

func newProjectAddCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "add <name...>",
		Short: "Add a project",
		Args:  usageArgs(cobra.MinimumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.TrimSpace(strings.Join(args, " "))
			if name == "" {
				return usagef("project add: empty name")
			}
			return opts.run(cmd, func(ctx context.Context, s *session, out io.Writer) error {
				p := s.app.AddProject(ctx, name)
				s.theme.OK(out, "added project "+p.Name)
				return nil
			})
		},
	}
}

func newProjectRemoveCommand(opts *rootOptions) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "rm <ref>",
		Short: "Remove a project; its todos move to " + app.DefaultProjectName,
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, func(ctx context.Context, s *session, out io.Writer) error {
				p, err := resolveProject(s.app, args[0])
				if err != nil {
					return err
				}
				question := fmt.Sprintf("Delete project %q? Its todos move to %s.", p.Name, app.DefaultProjectName)
				if !yes && !confirm(cmd.InOrStdin(), out, question) {
					fmt.Fprintln(out, "cancelled")
					return nil
				}
				if !s.app.DeleteProject(ctx, p.ID) {
					return notFound("project", args[0])
				}
				s.theme.OK(out, "removed project "+p.Name)
				return nil
			})
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}
