package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/weftlab/weft/internal/ir"
	"github.com/weftlab/weft/internal/store"
	"github.com/weftlab/weft/internal/verify"
)

// VerifyOptions holds flags for the verify command.
type VerifyOptions struct {
	*RootOptions
	Parallel bool
	Archive  string
}

// NewVerifyCommand creates the verify command.
func NewVerifyCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &VerifyOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "verify <model-dir>",
		Short: "Compile a model and verify its wiring",
		Long: `Compile a CUE composition model and run the verification checks
against the resulting system IR.

Exits 1 when the report contains errors, 2 when the model cannot be
compiled.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors - we handle our own error output
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVerifyCmd(opts, args[0], cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Parallel, "parallel", false, "run verification checks concurrently")
	cmd.Flags().StringVar(&opts.Archive, "archive", "", "sqlite archive to record the report in")

	return cmd
}

// VerifyData is the structured payload of a verify run.
type VerifyData struct {
	Hash   string         `json:"hash" yaml:"hash"`
	Report *verify.Report `json:"report" yaml:"report"`
}

func runVerifyCmd(opts *VerifyOptions, modelDir string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	system, model, err := compileModel(modelDir)
	if err != nil {
		return outputLoadError(formatter, err)
	}
	formatter.VerboseLog("Loaded %d CUE file(s) from %s", model.FileCount, modelDir)

	var report *verify.Report
	if opts.Parallel {
		report = verify.VerifyParallel(cmd.Context(), system)
	} else {
		report = verify.Verify(system)
	}

	hash, err := ir.SystemHash(system)
	if err != nil {
		return outputLoadError(formatter, err)
	}

	if opts.Archive != "" {
		if err := archiveReport(opts.Archive, system, report); err != nil {
			return outputLoadError(formatter, &LoadError{Code: ErrCodeWriteFailed,
				Message: fmt.Sprintf("archiving report: %v", err)})
		}
	}

	if formatter.Format != "text" {
		if err := formatter.Success(VerifyData{Hash: hash, Report: report}); err != nil {
			return err
		}
	} else {
		printReport(formatter, system, report)
	}

	if report.Errors > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("verification failed with %d error(s)", report.Errors))
	}
	return nil
}

// archiveReport records both the system and the report, so reports always
// reference an archived system.
func archiveReport(path string, system *ir.SystemIR, report *verify.Report) error {
	st, err := store.Open(path)
	if err != nil {
		return err
	}
	defer st.Close()
	ctx := context.Background()
	hash, err := st.PutSystem(ctx, system)
	if err != nil {
		return err
	}
	_, err = st.PutReport(ctx, hash, report)
	return err
}

func printReport(formatter *OutputFormatter, system *ir.SystemIR, report *verify.Report) {
	w := formatter.Writer
	if report.Sound() {
		fmt.Fprintf(w, "✓ %s is sound\n", system.Name)
	} else {
		fmt.Fprintf(w, "✗ %s has wiring problems\n", system.Name)
	}
	fmt.Fprintf(w, "  %d check(s): %d passed, %d error(s), %d warning(s), %d info\n",
		report.ChecksTotal, report.ChecksPassed, report.Errors, report.Warnings, report.InfoCount)

	for _, f := range report.Findings {
		if f.Passed && !formatter.Verbose {
			continue
		}
		marker := "•"
		if !f.Passed {
			marker = "!"
		}
		fmt.Fprintf(w, "  %s [%s] %s: %s\n", marker, f.CheckID, f.Severity, f.Message)
	}
}
