// Package cli はタスクAPIを操作するコマンドラインツール todoctl を実装します。
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"todoapp/backend/internal/client"
	"todoapp/backend/internal/models"
	"todoapp/backend/internal/store"
)

const defaultServer = "http://localhost:8080"

// RootCommand は todoctl のルートコマンドです。
type RootCommand struct {
	cmd       *cobra.Command
	configDir string
	server    string
}

// NewRootCommand はサブコマンドを登録したルートコマンドを作成します。
func NewRootCommand() *RootCommand {
	root := &RootCommand{}
	root.cmd = &cobra.Command{
		Use:   "todoctl",
		Short: "Manage your to-do tasks from the command line",
		Long: `todoctl talks to the task API.

EXAMPLES:
  todoctl login --email ana@example.com      # password from --password or TODOCTL_PASSWORD
  todoctl add "Buy milk" -d "2 liters"
  todoctl list --filter pending
  todoctl toggle 3
  todoctl stats

The session token is stored in $XDG_CONFIG_HOME/todoctl/session.json.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.cmd.PersistentFlags()
	flags.StringVar(&root.configDir, "config-dir", "", "Configuration directory (default $XDG_CONFIG_HOME/todoctl)")
	flags.StringVar(&root.server, "server", "", "API base URL (overrides TODOCTL_SERVER and the saved session)")

	root.cmd.AddCommand(
		root.newLoginCommand(),
		root.newRegisterCommand(),
		root.newLogoutCommand(),
		root.newListCommand(),
		root.newShowCommand(),
		root.newAddCommand(),
		root.newEditCommand(),
		root.newToggleCommand(),
		root.newRmCommand(),
		root.newStatsCommand(),
	)
	return root
}

// Execute はコマンドを実行します。
func (r *RootCommand) Execute(ctx context.Context) error {
	return r.cmd.ExecuteContext(ctx)
}

func (r *RootCommand) dir() string {
	if r.configDir != "" {
		return r.configDir
	}
	return DefaultConfigDir()
}

// serverURL は --server、TODOCTL_SERVER、保存済みセッション、デフォルトの順で決めます。
func (r *RootCommand) serverURL(saved string) string {
	switch {
	case r.server != "":
		return r.server
	case os.Getenv("TODOCTL_SERVER") != "":
		return os.Getenv("TODOCTL_SERVER")
	case saved != "":
		return saved
	default:
		return defaultServer
	}
}

// workspace はログイン済みのクライアントとストアです。
type workspace struct {
	api     *client.Client
	store   *store.Store
	effects *store.Effects
}

func (r *RootCommand) openWorkspace() (*workspace, error) {
	sess, err := LoadSession(r.dir())
	if err != nil {
		return nil, err
	}
	api := client.New(r.serverURL(sess.Server), client.WithToken(sess.Token))
	st := store.New(store.InitialState())
	return &workspace{api: api, store: st, effects: store.NewEffects(st, api)}, nil
}

func explain(err error) error {
	if client.IsUnauthorized(err) {
		return fmt.Errorf("%w (session expired? run `todoctl login`)", err)
	}
	return err
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid task id %q", s)
	}
	return id, nil
}

func (r *RootCommand) newLoginCommand() *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and save the session token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				password = os.Getenv("TODOCTL_PASSWORD")
			}
			if email == "" || password == "" {
				return fmt.Errorf("--email and --password (or TODOCTL_PASSWORD) are required")
			}
			server := r.serverURL("")
			api := client.New(server)
			res, err := api.Login(cmd.Context(), email, password)
			if err != nil {
				return err
			}
			if err := SaveSession(r.dir(), &Session{Server: server, Email: res.Email, Token: res.Token}); err != nil {
				return err
			}
			name := strings.TrimSpace(res.FirstName + " " + res.LastName)
			if name == "" {
				name = res.Email
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s\n", bold(name))
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().StringVar(&password, "password", "", "Account password")
	return cmd
}

func (r *RootCommand) newRegisterCommand() *cobra.Command {
	var req models.UserRegisterRequest
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a new account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if req.Password == "" {
				req.Password = os.Getenv("TODOCTL_PASSWORD")
			}
			api := client.New(r.serverURL(""))
			user, err := api.Register(cmd.Context(), req)
			if err != nil {
				return describeValidation(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Registered %s (id %d)\n", user.Email, user.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&req.Email, "email", "", "Account email")
	cmd.Flags().StringVar(&req.Password, "password", "", "Account password")
	cmd.Flags().StringVar(&req.FirstName, "first-name", "", "First name")
	cmd.Flags().StringVar(&req.LastName, "last-name", "", "Last name")
	return cmd
}

func (r *RootCommand) newLogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Remove the saved session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := RemoveSession(r.dir()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return nil
		},
	}
}

func (r *RootCommand) newListCommand() *cobra.Command {
	var filter string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List your tasks, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := store.ParseFilter(filter)
			if err != nil {
				return err
			}
			ws, err := r.openWorkspace()
			if err != nil {
				return err
			}
			if err := ws.effects.LoadTasks(cmd.Context()); err != nil {
				return explain(err)
			}
			state := ws.store.Dispatch(store.SetFilter{Filter: f})
			printTaskList(cmd.OutOrStdout(), store.FilteredTasks(state))
			return nil
		},
	}
	cmd.Flags().StringVarP(&filter, "filter", "f", string(store.FilterAll), "all, completed or pending")
	return cmd
}

func (r *RootCommand) newShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show one task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			ws, err := r.openWorkspace()
			if err != nil {
				return err
			}
			task, err := ws.api.GetTask(cmd.Context(), id)
			if err != nil {
				return explain(err)
			}
			printTaskDetail(cmd.OutOrStdout(), *task)
			return nil
		},
	}
}

func (r *RootCommand) newAddCommand() *cobra.Command {
	var description string
	cmd := &cobra.Command{
		Use:   "add TITLE...",
		Short: "Create a task",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := r.openWorkspace()
			if err != nil {
				return err
			}
			req := models.CreateTaskRequest{Title: strings.Join(args, " ")}
			if cmd.Flags().Changed("description") {
				req.Description = &description
			}
			task, err := ws.effects.CreateTask(cmd.Context(), req)
			if err != nil {
				return describeValidation(explain(err))
			}
			fmt.Fprint(cmd.OutOrStdout(), "Created ")
			printTaskLine(cmd.OutOrStdout(), *task)
			return nil
		},
	}
	cmd.Flags().StringVarP(&description, "description", "d", "", "Task description")
	return cmd
}

func (r *RootCommand) newEditCommand() *cobra.Command {
	var (
		title, description string
		done               bool
	)
	cmd := &cobra.Command{
		Use:   "edit ID",
		Short: "Change a task's title, description or completion",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			ws, err := r.openWorkspace()
			if err != nil {
				return err
			}
			current, err := ws.api.GetTask(cmd.Context(), id)
			if err != nil {
				return explain(err)
			}

			// 指定されなかった項目は現在の値のまま送る
			req := models.UpdateTaskRequest{
				Title:       current.Title,
				Description: current.Description,
				IsCompleted: current.IsCompleted,
			}
			flags := cmd.Flags()
			if flags.Changed("title") {
				req.Title = title
			}
			if flags.Changed("description") {
				if description == "" {
					req.Description = nil
				} else {
					req.Description = &description
				}
			}
			if flags.Changed("done") {
				req.IsCompleted = done
			}

			task, err := ws.effects.UpdateTask(cmd.Context(), id, req)
			if err != nil {
				return describeValidation(explain(err))
			}
			fmt.Fprint(cmd.OutOrStdout(), "Updated ")
			printTaskLine(cmd.OutOrStdout(), *task)
			return nil
		},
	}
	cmd.Flags().StringVarP(&title, "title", "t", "", "New title")
	cmd.Flags().StringVarP(&description, "description", "d", "", "New description (empty clears it)")
	cmd.Flags().BoolVar(&done, "done", false, "Mark as completed (--done=false to reopen)")
	return cmd
}

func (r *RootCommand) newToggleCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "toggle ID",
		Short: "Flip a task between completed and pending",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			ws, err := r.openWorkspace()
			if err != nil {
				return err
			}
			task, err := ws.effects.ToggleTask(cmd.Context(), id)
			if err != nil {
				return explain(err)
			}
			printTaskLine(cmd.OutOrStdout(), *task)
			return nil
		},
	}
}

func (r *RootCommand) newRmCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "rm ID",
		Aliases: []string{"delete"},
		Short:   "Delete a task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			ws, err := r.openWorkspace()
			if err != nil {
				return err
			}
			if err := ws.effects.DeleteTask(cmd.Context(), id); err != nil {
				return explain(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted #%d\n", id)
			return nil
		},
	}
}

func (r *RootCommand) newStatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show task counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := r.openWorkspace()
			if err != nil {
				return err
			}
			stats, err := ws.api.Statistics(cmd.Context())
			if err != nil {
				return explain(err)
			}
			printStatistics(cmd.OutOrStdout(), *stats)
			return nil
		},
	}
}

// describeValidation はフィールドエラーをメッセージに含めます。
func describeValidation(err error) error {
	apiErr, ok := asAPIError(err)
	if !ok || len(apiErr.Errors) == 0 {
		return err
	}
	parts := make([]string, 0, len(apiErr.Errors))
	for _, fe := range apiErr.Errors {
		parts = append(parts, fe.Message)
	}
	return fmt.Errorf("%s: %s", apiErr.Message, strings.Join(parts, "; "))
}

// Run は todoctl を実行し、終了コードを返します。
func Run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	root := NewRootCommand()
	root.cmd.SetArgs(args)
	root.cmd.SetOut(stdout)
	root.cmd.SetErr(stderr)
	if err := root.Execute(ctx); err != nil {
		PrintError(stderr, err)
		return 1
	}
	return 0
}

func asAPIError(err error) (*client.APIError, bool) {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
