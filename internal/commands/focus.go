package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/focustache/focustache/internal/db"
	"github.com/focustache/focustache/internal/session"
	"github.com/focustache/focustache/internal/tui"
)

var (
	focusPlannedMinutes int
	focusChronodoro     bool
	focusCycleMinutes   int
	focusTotalCycles    int
	focusNoUI           bool
	stopCancel          bool
	stopNotes           string
)

var focusCmd = &cobra.Command{
	Use:   "focus [task-id]",
	Short: "Start a focus session on a task",
	Long: `Start a focus session on a task. Opens the interactive timer by default.

Examples:
  focustache focus 42                          # Focus mode
  focustache focus 42 --planned 50             # With a 50 minute target
  focustache focus 42 --chronodoro --cycles 4  # Pomodoro cycles`,
	Args: cobra.ExactArgs(1),
	Run: withDB(func(cmd *cobra.Command, args []string) {
		taskID, err := strconv.ParseUint(args[0], 10, 32)
		if err != nil {
			fmt.Printf("Error: invalid task ID '%s'\n", args[0])
			return
		}

		user, err := db.GetOrCreateLocalUser(db.DB)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		engine := session.NewEngine(db.DB, nil, nil)
		sess, err := engine.Start(user.ID, []uint{uint(taskID)}, focusPlannedMinutes)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		if focusChronodoro {
			sess, err = engine.EnablePomodoro(user.ID, sess.ID, focusCycleMinutes, focusTotalCycles)
		} else {
			sess, err = engine.EnableFocus(user.ID, sess.ID, 0)
		}
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		if focusNoUI {
			fmt.Printf("⏱️  Focus session #%d started for task #%d\n", sess.ID, sess.TaskID)
			fmt.Printf("Started at: %s\n", sess.StartedAt.Format("15:04:05"))
			return
		}

		if err := tui.RunFocusTimer(engine, user.ID, sess); err != nil {
			fmt.Printf("Error: %v\n", err)
		}
	}),
}

var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the active focus session",
	Run: withDB(func(cmd *cobra.Command, args []string) {
		user, err := db.GetOrCreateLocalUser(db.DB)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		engine := session.NewEngine(db.DB, nil, nil)
		active, err := engine.Active(user.ID)
		if err != nil || active == nil {
			fmt.Println("No active focus session")
			return
		}

		action := session.StopActionComplete
		if stopCancel {
			action = session.StopActionCancel
		}

		stopped, err := engine.Stop(user.ID, active.ID, action, stopNotes)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		if stopCancel {
			fmt.Printf("🚫 Session #%d cancelled\n", stopped.ID)
			return
		}
		fmt.Printf("⏹️  Session #%d completed: %s focused, efficiency %d%%\n",
			stopped.ID, formatSeconds(stopped.ElapsedSeconds), stopped.EfficiencyPercent)
	}),
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the active focus session",
	Run: withDB(func(cmd *cobra.Command, args []string) {
		user, err := db.GetOrCreateLocalUser(db.DB)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		engine := session.NewEngine(db.DB, nil, nil)
		active, err := engine.Active(user.ID)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		if active == nil {
			fmt.Println("No active focus session")
			return
		}

		fmt.Printf("⏱️  Session #%d on task #%d: %s\n", active.ID, active.TaskID, active.Task.Title)
		fmt.Printf("Elapsed: %s", formatSeconds(active.ElapsedSeconds))
		if active.TimerPaused {
			fmt.Print(" (paused)")
		}
		fmt.Println()
		if active.PomodoroEnabled {
			fmt.Printf("Chronodoro: cycle %d/%d (%s), %s left in cycle\n",
				active.CyclesElapsed/2+1, active.TotalCyclesPlanned,
				active.CurrentCycleKind,
				formatSeconds(session.RemainingInCycle(active)))
		}
	}),
}

func init() {
	focusCmd.Flags().IntVar(&focusPlannedMinutes, "planned", 0, "Planned duration in minutes (5-480)")
	focusCmd.Flags().BoolVar(&focusChronodoro, "chronodoro", false, "Enable Pomodoro-style cycles")
	focusCmd.Flags().IntVar(&focusCycleMinutes, "cycle", 0, "Cycle length in minutes (5-60, default 25)")
	focusCmd.Flags().IntVar(&focusTotalCycles, "cycles", 0, "Planned cycles (1-12, default 4)")
	focusCmd.Flags().BoolVar(&focusNoUI, "no-ui", false, "Start session without interactive UI")
	stopCmd.Flags().BoolVar(&stopCancel, "cancel", false, "Cancel instead of completing")
	stopCmd.Flags().StringVar(&stopNotes, "notes", "", "Notes to attach to the session")
}
