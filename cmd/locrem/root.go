package main

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/locrem/internal/model"
	"github.com/sandeepkv93/locrem/internal/tui"
	"github.com/sandeepkv93/locrem/internal/viewmodel"
	"github.com/sandeepkv93/locrem/internal/views"
	"github.com/spf13/cobra"
)

var errNotSaved = errors.New("reminder not saved")

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}
	rootCmd := &cobra.Command{
		Use:   "locrem",
		Short: "Location reminders for the terminal",
		Long: `locrem saves reminders tied to a place and tells you when you arrive there.

Run without a subcommand to open the interactive shell.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, opts)
		},
	}
	rootCmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "path to a yaml config file")
	rootCmd.PersistentFlags().StringVar(&opts.dbPath, "db", "", "sqlite database path (overrides db.path)")

	rootCmd.AddCommand(newTUICommand(opts))
	rootCmd.AddCommand(newListCommand(opts))
	rootCmd.AddCommand(newAddCommand(opts))
	rootCmd.AddCommand(newShowCommand(opts))
	rootCmd.AddCommand(newClearCommand(opts))
	return rootCmd
}

func newTUICommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive shell",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, opts)
		},
	}
}

func runTUI(cmd *cobra.Command, opts *rootOptions) error {
	ctx := cmd.Context()
	a, err := openApp(opts, cmd.ErrOrStderr(), true)
	if err != nil {
		return err
	}
	defer a.Close()

	a.serveMetrics(ctx)
	monitor := a.newMonitor(ctx)
	monitor.Start()
	defer monitor.Stop()

	m := tui.NewModel(ctx, tui.Options{
		DataSource:           a.repo,
		Monitor:              monitor,
		Notifier:             tui.ExecDesktopNotifier{},
		DesktopNotifications: a.cfg.Notify.Desktop,
		Logger:               a.logger,
	})
	program := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("run shell: %w", err)
	}
	return nil
}

func newListCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved reminders",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(opts, cmd.ErrOrStderr(), false)
			if err != nil {
				return err
			}
			defer a.Close()

			vm := viewmodel.NewRemindersListViewModel(a.repo, a.logger)
			var loadErr error
			cancel := vm.ShowSnackBar.Observe(func(msg string) { loadErr = errors.New(msg) })
			defer cancel()

			vm.LoadReminders(cmd.Context())
			if loadErr != nil {
				return loadErr
			}
			out := cmd.OutOrStdout()
			if vm.ShowNoData.Get() {
				fmt.Fprintln(out, "No Data")
				return nil
			}
			for _, item := range vm.RemindersList.Get() {
				fmt.Fprintln(out, formatItem(item))
			}
			return nil
		},
	}
}

type addOptions struct {
	title       string
	description string
	location    string
	lat         float64
	lng         float64
}

func newAddCommand(opts *rootOptions) *cobra.Command {
	add := &addOptions{}
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Save a reminder",
		Example: `  locrem add --title "Buy stamps" --location "Post office" --lat 37.7793 --lng -122.4193
  locrem add --title "Say hi" --location "Office"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			latSet, lngSet := cmd.Flags().Changed("lat"), cmd.Flags().Changed("lng")
			if latSet != lngSet {
				return errors.New("--lat and --lng must be given together")
			}

			a, err := openApp(opts, cmd.ErrOrStderr(), false)
			if err != nil {
				return err
			}
			defer a.Close()

			vm := viewmodel.NewSaveReminderViewModel(a.repo, a.logger)
			var problems []string
			cancelInt := vm.ShowSnackBarInt.Observe(func(k viewmodel.MessageKey) { problems = append(problems, k.Text()) })
			defer cancelInt()
			cancelErr := vm.ShowErrorMessage.Observe(func(msg string) { problems = append(problems, msg) })
			defer cancelErr()
			cancelToast := vm.ShowToast.Observe(func(msg string) { fmt.Fprintln(cmd.OutOrStdout(), msg) })
			defer cancelToast()

			vm.ReminderTitle.Set(strings.TrimSpace(add.title))
			vm.ReminderDescription.Set(strings.TrimSpace(add.description))
			location := strings.TrimSpace(add.location)
			if latSet {
				poi := model.PointOfInterest{Name: location, Latitude: add.lat, Longitude: add.lng}
				if location != "" {
					if err := vm.SelectPOI(poi); err != nil {
						return err
					}
				}
			} else {
				vm.ReminderSelectedLocationStr.Set(location)
			}

			saved, ok := vm.SaveReminder(cmd.Context(), vm.CurrentItem())
			if !ok {
				return fmt.Errorf("%w: %s", errNotSaved, strings.Join(problems, "; "))
			}
			fmt.Fprintln(cmd.OutOrStdout(), saved.ID)
			return nil
		},
	}
	cmd.Flags().StringVarP(&add.title, "title", "t", "", "reminder title")
	cmd.Flags().StringVarP(&add.description, "description", "d", "", "reminder description")
	cmd.Flags().StringVarP(&add.location, "location", "l", "", "place name")
	cmd.Flags().Float64Var(&add.lat, "lat", 0, "place latitude")
	cmd.Flags().Float64Var(&add.lng, "lng", 0, "place longitude")
	return cmd
}

func newShowCommand(opts *rootOptions) *cobra.Command {
	var raw bool
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one reminder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(opts, cmd.ErrOrStderr(), false)
			if err != nil {
				return err
			}
			defer a.Close()

			vm := viewmodel.NewReminderDetailViewModel(a.repo, a.logger)
			if !vm.Load(cmd.Context(), args[0]) {
				msg, _ := vm.ShowErrorMessage.Consume()
				return errors.New(msg)
			}
			item := vm.Reminder.Get()
			md := views.ReminderDetailMarkdown(views.ReminderDetailData{
				ID:          item.ID,
				Title:       item.Title,
				Description: item.Description,
				Location:    item.Location,
				Latitude:    item.Latitude,
				Longitude:   item.Longitude,
			})
			if raw {
				fmt.Fprint(cmd.OutOrStdout(), md)
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), views.RenderMarkdown(md))
			return nil
		},
	}
	cmd.Flags().BoolVar(&raw, "raw", false, "print markdown without rendering")
	return cmd
}

func newClearCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete every reminder",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(opts, cmd.ErrOrStderr(), false)
			if err != nil {
				return err
			}
			defer a.Close()
			a.repo.DeleteAllReminders(cmd.Context())
			fmt.Fprintln(cmd.OutOrStdout(), "all reminders cleared")
			return nil
		},
	}
}

func formatItem(item viewmodel.ReminderDataItem) string {
	coords := "-"
	if item.Latitude != nil && item.Longitude != nil {
		coords = views.FormatCoordinate(*item.Latitude) + "," + views.FormatCoordinate(*item.Longitude)
	}
	return strings.Join([]string{item.ID, item.Title, item.Location, coords}, "\t")
}
