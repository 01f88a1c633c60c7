package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/kmallory/atomicday/internal/cli"
	"github.com/kmallory/atomicday/internal/storage"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Store path (.json or .db file, or a directory for the default backend)." type:"path" default:"~/.config/atomicday/data"`
	Date    string `help:"Working date (YYYY-MM-DD or 'today')." default:"today"`
	Debug   bool   `help:"Enable debug logging."`

	Init cli.InitCmd `cmd:"" help:"Initialize atomicday storage."`
	Tui  cli.TuiCmd  `cmd:"" help:"Launch the interactive dashboard." default:"1"`
	Day  cli.DayCmd  `cmd:"" help:"Show the working date's full record."`
	Goto cli.GotoCmd `cmd:"" help:"Close the working date and switch to another."`

	Routine struct {
		Show   cli.RoutineShowCmd   `cmd:"" help:"Show the Victory Hour slots." default:"1"`
		Toggle cli.RoutineToggleCmd `cmd:"" help:"Toggle a routine slot."`
		Set    cli.RoutineSetCmd    `cmd:"" help:"Set a routine slot's activity."`
	} `cmd:"" help:"Manage the 20/20/20 morning routine."`

	Gratitude struct {
		Show cli.GratitudeShowCmd `cmd:"" help:"Show gratitude entries." default:"1"`
		Set  cli.GratitudeSetCmd  `cmd:"" help:"Set one gratitude entry."`
		Edit cli.GratitudeEditCmd `cmd:"" help:"Edit all entries interactively."`
	} `cmd:"" help:"Manage daily gratitude."`

	Five struct {
		Show cli.FiveShowCmd `cmd:"" help:"Show the daily five." default:"1"`
		Set  cli.FiveSetCmd  `cmd:"" help:"Set a daily five entry."`
	} `cmd:"" help:"Manage the daily five priorities."`

	Habit struct {
		List   cli.HabitListCmd   `cmd:"" help:"List today's habits." default:"1"`
		Add    cli.HabitAddCmd    `cmd:"" help:"Add a habit."`
		Toggle cli.HabitToggleCmd `cmd:"" help:"Toggle a habit."`
		Remove cli.HabitRemoveCmd `cmd:"" help:"Remove a habit."`
	} `cmd:"" help:"Manage habits."`

	Task struct {
		List   cli.TaskListCmd   `cmd:"" help:"List today's tasks." default:"1"`
		Add    cli.TaskAddCmd    `cmd:"" help:"Add a task."`
		Toggle cli.TaskToggleCmd `cmd:"" help:"Toggle a task."`
		Remove cli.TaskRemoveCmd `cmd:"" help:"Remove a task."`
	} `cmd:"" help:"Manage tasks."`

	Block struct {
		List   cli.BlockListCmd   `cmd:"" help:"List today's time blocks." default:"1"`
		Add    cli.BlockAddCmd    `cmd:"" help:"Add a time block."`
		Toggle cli.BlockToggleCmd `cmd:"" help:"Toggle a time block."`
		Remove cli.BlockRemoveCmd `cmd:"" help:"Remove a time block."`
		Gaps   cli.BlockGapsCmd   `cmd:"" help:"Show free gaps in the schedule."`
	} `cmd:"" help:"Manage time blocks."`

	Goal struct {
		List   cli.GoalListCmd   `cmd:"" help:"List weekly goals." default:"1"`
		Add    cli.GoalAddCmd    `cmd:"" help:"Add a weekly goal."`
		Set    cli.GoalSetCmd    `cmd:"" help:"Update a goal's text."`
		Toggle cli.GoalToggleCmd `cmd:"" help:"Toggle a goal."`
		Reset  cli.GoalResetCmd  `cmd:"" help:"Reset goals to empty slots."`
	} `cmd:"" help:"Manage weekly goals."`

	Stack struct {
		List   cli.StackListCmd   `cmd:"" help:"List habit stacks." default:"1"`
		Add    cli.StackAddCmd    `cmd:"" help:"Add a habit stack."`
		Toggle cli.StackToggleCmd `cmd:"" help:"Toggle a habit stack."`
		Remove cli.StackRemoveCmd `cmd:"" help:"Remove a habit stack."`
	} `cmd:"" help:"Manage habit stacks."`

	Identity struct {
		Show cli.IdentityShowCmd `cmd:"" help:"Show the identity statement." default:"1"`
		Set  cli.IdentitySetCmd  `cmd:"" help:"Set the identity statement."`
	} `cmd:"" help:"Manage the identity statement."`

	Stats   cli.StatsCmd   `cmd:"" help:"Show streaks and progress."`
	History cli.HistoryCmd `cmd:"" help:"Show archived history."`
	Export  cli.ExportCmd  `cmd:"" help:"Export the schedule as an iCalendar file."`
	Purge   cli.PurgeCmd   `cmd:"" help:"Archive and prune old entries now."`

	Backup struct {
		Create  cli.BackupCreateCmd  `cmd:"" help:"Create a backup." default:"1"`
		List    cli.BackupListCmd    `cmd:"" help:"List backups."`
		Restore cli.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage backups."`

	Doctor cli.DoctorCmd `cmd:"" help:"Run health checks."`
}

func main() {
	vars := kong.Vars{"version": "v0.3.0"}
	for k, v := range cli.GapVars() {
		vars[k] = v
	}

	ctx := kong.Parse(&CLI,
		kong.Name("atomicday"),
		kong.Description("Daily productivity tracker built on the 5 AM Club and Atomic Habits"),
		kong.UsageOnError(),
		vars,
	)

	level := slog.LevelWarn
	if CLI.Debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	date, err := cli.ResolveDate(CLI.Date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Storage backend follows the config path shape: .json and .db files
	// select the file stores, anything else is a badger directory.
	var store storage.Provider
	switch {
	case strings.HasSuffix(CLI.Config, ".json"):
		store = storage.NewJSONStore(CLI.Config)
	case strings.HasSuffix(CLI.Config, ".db"):
		store = storage.NewSQLiteStore(CLI.Config)
	default:
		store = storage.NewBadgerStore(CLI.Config, logger)
	}

	appCtx := &cli.Context{
		Store:  store,
		Logger: logger,
		Date:   date,
	}

	if err := ctx.Run(appCtx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
