package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/mwarner/courtsched/internal/clash"
	"github.com/mwarner/courtsched/internal/config"
	"github.com/mwarner/courtsched/internal/excel"
	"github.com/mwarner/courtsched/internal/export"
	"github.com/mwarner/courtsched/internal/report"
	"github.com/mwarner/courtsched/internal/schedule"
	"github.com/mwarner/courtsched/internal/snapshot"
	"github.com/mwarner/courtsched/internal/strategy"
	"github.com/mwarner/courtsched/internal/trace"
	"github.com/mwarner/courtsched/internal/validator"
)

const defaultConfigFile = "config.yaml"

func resolveConfigPath(configFlag string) (string, error) {
	if configFlag != "" {
		return configFlag, nil
	}
	if _, err := os.Stat(defaultConfigFile); err == nil {
		return defaultConfigFile, nil
	}
	return "", fmt.Errorf("no config file found. Either create %s in the current directory or pass --config", defaultConfigFile)
}

func newLogger(verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "courtsched",
		Short: "Multi-division league court scheduler",
	}

	var initOutputPath string
	initCmd := &cobra.Command{
		Use:          "init",
		Short:        "Create a starter config.yaml in the current directory",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(initOutputPath)
		},
	}
	initCmd.Flags().StringVarP(&initOutputPath, "output", "o", defaultConfigFile, "Output path for the config file")

	scheduleCmd := &cobra.Command{
		Use:   "schedule",
		Short: "Generate and validate schedules",
	}

	var configFile string
	scheduleCmd.PersistentFlags().StringVar(&configFile, "config", "", "Path to config file (default: config.yaml in current directory)")

	var (
		outputFile   string
		csvFile      string
		snapshotFile string
		verbose      bool
	)
	generateCmd := &cobra.Command{
		Use:          "generate",
		Short:        "Generate a schedule from a config file",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, err := resolveConfigPath(configFile)
			if err != nil {
				return err
			}
			return runGenerate(configPath, outputFile, csvFile, snapshotFile, verbose)
		},
	}
	generateCmd.Flags().StringVarP(&outputFile, "output", "o", "schedule.xlsx", "Output Excel file path")
	generateCmd.Flags().StringVar(&csvFile, "csv", "", "Also write the flat schedule as CSV to this path")
	generateCmd.Flags().StringVar(&snapshotFile, "snapshot", "", "Also write a JSON snapshot to this path")
	generateCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Trace every placement decision")

	validateCmd := &cobra.Command{
		Use:          "validate <snapshot.json>",
		Short:        "Validate a schedule snapshot against the scheduling invariants",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(args[0])
		},
	}

	scheduleCmd.AddCommand(generateCmd, validateCmd)

	reportCmd := &cobra.Command{
		Use:   "report",
		Short: "Derived views over a schedule snapshot",
	}

	varietyCmd := &cobra.Command{
		Use:          "variety <snapshot.json>",
		Short:        "Opponent variety per team and division",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVariety(args[0])
		},
	}

	var clashCSV string
	clashesCmd := &cobra.Command{
		Use:          "clashes <snapshot.json>",
		Short:        "Clash groups (teams transitively sharing players)",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClashes(args[0], clashCSV)
		},
	}
	clashesCmd.Flags().StringVar(&clashCSV, "csv", "", "Write the clash edge list as CSV to this path")

	netHeightsCmd := &cobra.Command{
		Use:          "netheights <snapshot.json>",
		Short:        "Net height changes between consecutive games on a court",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNetHeights(args[0])
		},
	}

	timePrefsCmd := &cobra.Command{
		Use:          "timeprefs <snapshot.json>",
		Short:        "Timeslot preference compliance per team",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTimePrefs(args[0])
		},
	}

	reportCmd.AddCommand(varietyCmd, clashesCmd, netHeightsCmd, timePrefsCmd)
	rootCmd.AddCommand(initCmd, scheduleCmd, reportCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runInit(outputPath string) error {
	if _, err := os.Stat(outputPath); err == nil {
		return fmt.Errorf("%s already exists; remove it first or use -o to write elsewhere", outputPath)
	}

	if err := os.WriteFile(outputPath, []byte(configTemplate), 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	fmt.Printf("✓ Created %s\n", outputPath)
	return nil
}

const configTemplate = `# courtsched season configuration
# ===============================
# This file defines the parameters for generating a weekly court schedule.

# Number of weeks to schedule. Round-robin rotations repeat cyclically once
# weeks exceed one full cycle.
weeks: 5

# Timeslots in 24-hour HH:MM format. The list order is the display order;
# placement priority is venue, then court, then time.
timeslots: ["19:00", "20:00", "21:00"]

# Venues and their courts. Each court is one parallel game per timeslot.
venues:
  - name: Mullum Mullum
    courts: ["3A", "3B", "4A", "4B", "5A", "5B"]
  - name: DCC
    courts: ["DC1", "DC2"]

# Divisions. Team IDs are generated as {code}-{NN} (D1-01, D1-02, ...).
# net_height_m is used by the net height change report only.
divisions:
  - code: D1
    teams: 9
    net_height_m: 2.43
  - code: D2
    teams: 15
    net_height_m: 2.35
  - code: D3
    teams: 9
    net_height_m: 2.24

# Clash rows. All teams in a row share players, so no two of them are ever
# scheduled at the same time in the same week.
clashes:
  - teams: ["D1-03", "D2-07"]

# Strategy determines how weekly pairings are generated.
# "round_robin" uses the circle method within each division.
strategy: round_robin

# Optional friendly names, keyed by team ID.
# team_names:
#   D1-01: Setters of Catan

# Optional timeslot preferences, keyed by team ID. Preferences never affect
# placement; they feed the "report timeprefs" compliance view.
# time_prefs:
#   D1-01:
#     preferred: ["19:00"]
#     not_preferred: ["21:00"]
`

func runGenerate(configPath, outputPath, csvPath, snapshotPath string, verbose bool) error {
	cfg, err := config.LoadFromFile(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	strat, err := strategy.Get(cfg.Strategy)
	if err != nil {
		return err
	}

	fixtures := strat.GenerateFixtures(cfg.Weeks, cfg.Divisions)
	slots := schedule.BuildSlots(cfg.Venues, cfg.Timeslots)
	clashSet := clash.NewSet(clash.BuildEdges(cfg.Clashes))

	fmt.Printf("Placing %d fixtures into %d weekly slots over %d weeks...\n",
		len(fixtures), len(slots), cfg.Weeks)

	var tracer schedule.Tracer
	if verbose {
		tracer = trace.NewPlacement(newLogger(verbose))
	}
	sched := schedule.Place(fixtures, slots, clashSet, tracer)

	stats := report.Stats(sched)
	unassigned := 0
	fmt.Println("\nPer division:")
	fmt.Printf("  %-8s %6s %5s %10s\n", "Division", "Games", "BYEs", "Unassigned")
	for _, d := range cfg.Divisions {
		s := stats[d.Code]
		fmt.Printf("  %-8s %6d %5d %10d\n", d.Code, s.Games, s.Byes, s.Unassigned)
		unassigned += s.Unassigned
	}

	if unassigned > 0 {
		fmt.Fprintf(os.Stderr, "⚠ %d game(s) could not be placed without violating a constraint\n", unassigned)
	} else {
		fmt.Println("\n✓ All games placed")
	}

	f, err := excel.Generate(cfg, sched)
	if err != nil {
		return fmt.Errorf("generating Excel: %w", err)
	}
	if err := f.SaveAs(outputPath); err != nil {
		return fmt.Errorf("saving file: %w", err)
	}
	fmt.Printf("✓ Schedule saved to %s\n", outputPath)

	if csvPath != "" {
		out, err := os.Create(csvPath)
		if err != nil {
			return fmt.Errorf("creating CSV: %w", err)
		}
		defer out.Close()
		if err := export.WriteScheduleCSV(out, sched); err != nil {
			return err
		}
		fmt.Printf("✓ CSV saved to %s\n", csvPath)
	}

	if snapshotPath != "" {
		if err := snapshot.Save(snapshotPath, snapshot.New(cfg, sched)); err != nil {
			return err
		}
		fmt.Printf("✓ Snapshot saved to %s\n", snapshotPath)
	}

	if unassigned > 0 {
		return fmt.Errorf("schedule is incomplete: %d game(s) unassigned", unassigned)
	}
	return nil
}

func runValidate(snapshotPath string) error {
	snap, err := snapshot.Load(snapshotPath)
	if err != nil {
		return err
	}

	violations := validator.Validate(snap.Config(), snap.State.Schedule)

	errors := 0
	warnings := 0
	for _, v := range violations {
		switch v.Type {
		case "error":
			errors++
			fmt.Printf("✗ %s\n", v.Message)
		case "warning":
			warnings++
			fmt.Printf("⚠ %s\n", v.Message)
		}
	}

	fmt.Printf("\nValidation complete: %d errors, %d warnings\n", errors, warnings)
	if errors > 0 {
		return fmt.Errorf("%d invariant violations found", errors)
	}
	return nil
}

func runVariety(snapshotPath string) error {
	snap, err := snapshot.Load(snapshotPath)
	if err != nil {
		return err
	}
	cfg := snap.Config()

	teams, divisions := report.OpponentVariety(snap.State.Schedule, cfg.TeamIDsByDivision())

	fmt.Printf("%-8s %6s %7s %7s %7s\n", "Team", "Games", "Unique", "Repeat", "Ratio")
	for _, t := range teams {
		fmt.Printf("%-8s %6d %7d %7d %7.2f\n", t.TeamID, t.Games, t.UniqueOpponents, t.RepeatGames, t.VarietyRatio)
	}

	fmt.Printf("\n%-8s %6s %7s %7s %7s\n", "Division", "Teams", "Avg", "Min", "Max")
	for _, d := range divisions {
		fmt.Printf("%-8s %6d %7.2f %7.2f %7.2f\n", d.Division, d.Teams, d.AvgVarietyRatio, d.MinVarietyRatio, d.MaxVarietyRatio)
	}
	return nil
}

func runClashes(snapshotPath, csvPath string) error {
	snap, err := snapshot.Load(snapshotPath)
	if err != nil {
		return err
	}

	edges := clash.BuildEdges(snap.State.ClashRows)
	groups := clash.Groups(edges)

	if len(groups) == 0 {
		fmt.Println("No clash constraints configured")
	}
	for i, g := range groups {
		fmt.Printf("Group %d (%d teams):", i+1, len(g))
		for _, t := range g {
			fmt.Printf(" %s", t)
		}
		fmt.Println()
	}

	if csvPath != "" {
		out, err := os.Create(csvPath)
		if err != nil {
			return fmt.Errorf("creating CSV: %w", err)
		}
		defer out.Close()
		if err := export.WriteClashEdgesCSV(out, edges); err != nil {
			return err
		}
		fmt.Printf("✓ Clash edges saved to %s\n", csvPath)
	}
	return nil
}

func runNetHeights(snapshotPath string) error {
	snap, err := snapshot.Load(snapshotPath)
	if err != nil {
		return err
	}

	rep := report.NetHeightChanges(snap.State.Schedule, snap.State.Divisions, snap.State.Timeslots)

	fmt.Printf("Net height changes: %d\n", rep.TotalChanges)
	for _, e := range rep.Events {
		fmt.Printf("  week %d %s %s: %s (%s, %.2fm) -> %s (%s, %.2fm)\n",
			e.Week, e.Venue, e.Court,
			e.FromTime, e.FromDivision, e.FromHeightM,
			e.ToTime, e.ToDivision, e.ToHeightM)
	}
	return nil
}

func runTimePrefs(snapshotPath string) error {
	snap, err := snapshot.Load(snapshotPath)
	if err != nil {
		return err
	}

	stats := report.TimePrefCompliance(snap.State.Schedule, snap.State.TeamTimePrefs)
	if len(stats) == 0 {
		fmt.Println("No time preferences configured")
		return nil
	}

	fmt.Printf("%-8s %10s %13s %12s %8s\n", "Team", "Preferred", "NotPreferred", "Unavailable", "Unrated")
	for _, s := range stats {
		fmt.Printf("%-8s %10d %13d %12d %8d\n", s.TeamID, s.Preferred, s.NotPreferred, s.Unavailable, s.Unrated)
	}
	return nil
}
