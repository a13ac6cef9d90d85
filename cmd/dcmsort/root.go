package main

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"dcmsort/internal/config"
	"dcmsort/internal/dicom"
	"dcmsort/internal/logging"
	"dcmsort/internal/pattern"
	"dcmsort/internal/runlock"
	"dcmsort/internal/selftest"
	"dcmsort/internal/sorter"
)

type rootFlags struct {
	configPath      string
	verbose         bool
	compressTargets bool
	deleteSource    bool
	forceDelete     bool
	keepGoing       bool
	symlink         bool
	move            bool
	test            bool
	unsafe          bool
	truncateTime    bool
}

func newRootCommand() *cobra.Command {
	flags := &rootFlags{}

	rootCmd := &cobra.Command{
		Use:   "dcmsort [flags] sourceDir targetPattern",
		Short: "Sort DICOM files into directories derived from their metadata",
		Long: `dcmsort reads the metadata of every file under sourceDir and places each
one at the path produced by substituting %Field placeholders in
targetPattern. A targetPattern without placeholders is treated as an
output directory and the configured default pattern is appended.

Pass an empty sourceDir ("") to read a newline-delimited file list from
standard input instead of walking a directory.`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSort(cmd, args, flags)
		},
	}

	rootCmd.Flags().BoolVarP(&flags.verbose, "verbose", "v", false, "Print diagnostic output for every file")
	rootCmd.Flags().BoolVarP(&flags.compressTargets, "compressTargets", "z", false, "Archive each populated target directory into a sibling zip")
	rootCmd.Flags().BoolVarP(&flags.deleteSource, "deleteSource", "d", false, "Delete the source directory after sorting (asks first)")
	rootCmd.Flags().BoolVarP(&flags.forceDelete, "forceDelete", "f", false, "Delete the source directory without asking")
	rootCmd.Flags().BoolVarP(&flags.keepGoing, "keepGoing", "k", false, "Skip colliding files instead of stopping")
	rootCmd.Flags().BoolVarP(&flags.symlink, "symlink", "s", false, "Symlink into the target tree instead of copying")
	rootCmd.Flags().BoolVarP(&flags.move, "move", "m", false, "Move files into the target tree instead of copying")
	rootCmd.Flags().BoolVarP(&flags.test, "test", "t", false, "Run the built-in self test against reference data")
	rootCmd.Flags().BoolVarP(&flags.unsafe, "unsafe", "u", false, "Keep unsafe characters in substituted path components")
	rootCmd.Flags().BoolVarP(&flags.truncateTime, "truncateTime", "r", false, "Drop fractional seconds from *Time field values")
	rootCmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", "Configuration file path")

	rootCmd.AddCommand(newConfigCommand(flags))

	return rootCmd
}

func runSort(cmd *cobra.Command, args []string, flags *rootFlags) error {
	cfg, _, _, err := config.Load(flags.configPath)
	if err != nil {
		return err
	}
	logger, err := logging.NewFromConfig(cfg, flags.verbose)
	if err != nil {
		return err
	}
	adapter, err := dicom.NewConfiguredAdapter(cfg)
	if err != nil {
		return err
	}

	if flags.test {
		if len(args) != 0 {
			return fmt.Errorf("--test takes no positional arguments")
		}
		return runSelftest(cmd, cfg, adapter, logger)
	}

	if len(args) != 2 {
		return fmt.Errorf("expected exactly two arguments: sourceDir targetPattern (got %d)", len(args))
	}

	opts := &config.Options{
		SourceDir:       args[0],
		TargetPattern:   args[1],
		DefaultPattern:  cfg.Sorting.DefaultPattern,
		Verbose:         flags.verbose,
		CompressTargets: flags.compressTargets,
		DeleteSource:    flags.deleteSource,
		ForceDelete:     flags.forceDelete,
		KeepGoing:       flags.keepGoing,
		Symlink:         flags.symlink,
		Move:            flags.move,
		Unsafe:          flags.unsafe,
		TruncateTime:    flags.truncateTime,
	}
	if err := opts.Validate(); err != nil {
		return err
	}

	s, err := sorter.New(opts, adapter, logger)
	if err != nil {
		return err
	}

	lock, err := runlock.Acquire(pattern.TargetRoot(s.Target()))
	if err != nil {
		return err
	}
	defer func() {
		_ = lock.Release()
	}()

	s.SetInput(cmd.InOrStdin())
	summary, err := s.Run(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), renderTable(
		[]string{"Result", "Files"},
		[][]string{
			{"sorted", strconv.Itoa(summary.Renamed)},
			{"skipped", strconv.Itoa(summary.Skipped)},
		},
		[]columnAlignment{alignLeft, alignRight},
	))

	if opts.CompressTargets {
		if err := sorter.ArchiveRecord(cmd.Context(), s.Record(), logger); err != nil {
			return err
		}
	}
	if opts.DeleteRequested() {
		return deleteSourceTree(cmd, opts, logger)
	}
	return nil
}

func runSelftest(cmd *cobra.Command, cfg *config.Config, adapter dicom.Adapter, logger *slog.Logger) error {
	result, err := selftest.Run(cmd.Context(), cfg, adapter, logger)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), renderTable(
		[]string{"Self test", "Value"},
		[][]string{
			{"archive", result.Archive},
			{"data", result.DataDir},
			{"output", result.TargetDir},
			{"sorted", strconv.Itoa(result.Summary.Renamed)},
			{"skipped", strconv.Itoa(result.Summary.Skipped)},
		},
		nil,
	))
	return nil
}

// deleteSourceTree removes the source directory after a successful run,
// asking first unless force-delete was given.
func deleteSourceTree(cmd *cobra.Command, opts *config.Options, logger *slog.Logger) error {
	if !opts.ForceDelete {
		ok, err := confirm(cmd, fmt.Sprintf("Delete source directory %s? [y/N]: ", opts.SourceDir))
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(cmd.OutOrStdout(), "Source directory kept.")
			return nil
		}
	}
	if err := os.RemoveAll(opts.SourceDir); err != nil {
		return fmt.Errorf("delete source directory: %w", err)
	}
	logging.NewComponentLogger(logger, "cleanup").Info("deleted source directory",
		logging.String("source", opts.SourceDir),
	)
	return nil
}

func confirm(cmd *cobra.Command, prompt string) (bool, error) {
	fmt.Fprint(cmd.OutOrStdout(), prompt)
	reader := bufio.NewReader(cmd.InOrStdin())
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return false, nil
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes", nil
}
