package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/wesleyorama2/benchfio/internal/config"
	"github.com/wesleyorama2/benchfio/internal/output"
	"github.com/wesleyorama2/benchfio/internal/preflight"
)

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate the environment and benchmark settings before a run",
		Long: `Run the preflight gate: confirm fio is installed and is a 3.x release,
that stdout can print UTF-8, and that the settings are complete and safe.

Settings come from an optional file (--config, YAML or JSON) and are
overridden by any flag given on the command line.

The process exits with a distinct status per violation:
  1   fio missing or incompatible, or write mode without --destructive
  4   --size missing for a file or directory target
  5   target directory or remote host list missing
  6   template missing, or rbd target without --ceph-pool
  7   generic template used for an rbd target
  8   mixed mode without --rwmixread
  9   --output missing
  10  target missing or not of the declared type
  90  output encoding is not UTF-8
  123 unknown target type

Examples:
  bench-fio check --type device --target /dev/sdb --mode randread --output ssd
  bench-fio check --config bench.yaml --destructive --format json`,
		Args: cobra.NoArgs,
		RunE: runCheck,
	}

	cmd.Flags().StringP("config", "c", "", "Settings file (YAML or JSON)")
	cmd.Flags().StringSliceP("target", "t", nil, "Benchmark target(s): files, devices, directories or an rbd image")
	cmd.Flags().String("type", "", "Target type: "+kindList())
	cmd.Flags().String("template", config.DefaultTemplate, "fio job template")
	cmd.Flags().StringP("size", "s", "", "Size of the test file(s), required for file and directory targets")
	cmd.Flags().StringP("output", "o", "", "Name of the benchmark output folder")
	cmd.Flags().StringSliceP("mode", "m", nil, "Workload mode(s), e.g. randread,randwrite,rw")
	cmd.Flags().StringSlice("mixed", nil, "Modes treated as mixed read/write")
	cmd.Flags().IntSlice("rwmixread", nil, "Read percentage(s) for mixed modes")
	cmd.Flags().Bool("destructive", false, "Allow modes that overwrite data on the target")
	cmd.Flags().String("remote", "", "File listing remote hosts to run fio on")
	cmd.Flags().String("ceph-pool", "", "Ceph pool for rbd targets")
	cmd.Flags().Bool("loop-items-per-mode", false, "Record rwmixread in the loop items once per mode instead of once")
	cmd.Flags().String("fio", preflight.DefaultBinary, "fio executable name or path")
	cmd.Flags().StringP("format", "f", string(output.FormatText), "Report format: text, json or yaml")
	cmd.Flags().BoolP("verbose", "v", false, "Enable verbose output and debug logging")
	cmd.Flags().Bool("no-color", false, "Disable colored output")

	return cmd
}

func runCheck(cmd *cobra.Command, args []string) error {
	binary, _ := cmd.Flags().GetString("fio")
	formatFlag, _ := cmd.Flags().GetString("format")
	verbose, _ := cmd.Flags().GetBool("verbose")
	noColor, _ := cmd.Flags().GetBool("no-color")
	perMode, _ := cmd.Flags().GetBool("loop-items-per-mode")

	format, err := output.ParseFormat(formatFlag)
	if err != nil {
		return err
	}

	logger, err := newLogger(verbose)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	stdout := cmd.OutOrStdout()
	formatter := output.GetFormatter(format, verbose, output.ShouldDisableColor(noColor, stdout))

	report := func(settings *config.Settings, result *preflight.Result, err error) error {
		text, fmtErr := formatter.Format(output.NewReport(settings, result, err))
		if fmtErr != nil {
			return fmtErr
		}
		fmt.Fprint(stdout, text)
		if err != nil {
			return &ReportedError{Err: err}
		}
		return nil
	}

	env := preflight.NewEnvironment()
	env.Binary = binary
	env.Stdout = stdout
	if format != output.FormatText {
		// keep stdout parseable
		env.Stdout = cmd.ErrOrStderr()
	}

	if err := env.ConfirmOutputEncoding(); err != nil {
		return report(nil, nil, err)
	}
	if err := env.ConfirmExecutable(); err != nil {
		return report(nil, nil, err)
	}

	settings, err := loadSettings(cmd.Flags())
	if err != nil {
		return report(nil, nil, err)
	}

	policy := preflight.LoopItemsOnce
	if perMode {
		policy = preflight.LoopItemsPerMode
	}

	validator := preflight.New(
		preflight.WithEnvironment(env),
		preflight.WithLogger(logger),
		preflight.WithLoopItemsPolicy(policy),
	)

	result, err := validator.Validate(cmd.Context(), settings)
	return report(settings, result, err)
}

// loadSettings reads the --config file, if any, and applies every flag the
// user set explicitly on top of it
func loadSettings(flags *pflag.FlagSet) (*config.Settings, error) {
	settings := config.DefaultSettings()

	if path, _ := flags.GetString("config"); path != "" {
		loaded, err := config.LoadSettings(path)
		if err != nil {
			return nil, err
		}
		settings = loaded
	}

	if flags.Changed("template") {
		settings.Template, _ = flags.GetString("template")
	}
	if flags.Changed("type") {
		kind, _ := flags.GetString("type")
		settings.Type = config.TargetKind(kind)
	}
	if flags.Changed("target") {
		settings.Target, _ = flags.GetStringSlice("target")
	}
	if flags.Changed("size") {
		settings.Size, _ = flags.GetString("size")
	}
	if flags.Changed("output") {
		settings.Output, _ = flags.GetString("output")
	}
	if flags.Changed("mode") {
		settings.Mode, _ = flags.GetStringSlice("mode")
	}
	if flags.Changed("mixed") {
		settings.Mixed, _ = flags.GetStringSlice("mixed")
	}
	if flags.Changed("rwmixread") {
		settings.RWMixRead, _ = flags.GetIntSlice("rwmixread")
	}
	if flags.Changed("destructive") {
		settings.Destructive, _ = flags.GetBool("destructive")
	}
	if flags.Changed("remote") {
		settings.Remote, _ = flags.GetString("remote")
	}
	if flags.Changed("ceph-pool") {
		settings.CephPool, _ = flags.GetString("ceph-pool")
	}

	if err := settings.CheckRequired(); err != nil {
		return nil, err
	}
	return settings, nil
}

// kindList joins the recognized target kinds for help text
func kindList() string {
	kinds := config.TargetKinds()
	names := make([]string, len(kinds))
	for i, kind := range kinds {
		names[i] = string(kind)
	}
	return strings.Join(names, ", ")
}
