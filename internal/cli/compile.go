package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/spf13/cobra"

	"github.com/weftlab/weft/internal/cache"
	"github.com/weftlab/weft/internal/compiler"
	"github.com/weftlab/weft/internal/ir"
	"github.com/weftlab/weft/internal/store"
)

// CompileOptions holds flags for the compile command.
type CompileOptions struct {
	*RootOptions
	Output  string // output file path
	Archive string // sqlite archive path
}

var (
	compileCacheOnce sync.Once
	compileCache     *cache.CompileCache
)

// sharedCache returns the process-wide compile cache. Commands invoked
// repeatedly in the same process reuse compiled IR for unchanged source.
func sharedCache() *cache.CompileCache {
	compileCacheOnce.Do(func() {
		c, err := cache.New(cache.DefaultSize)
		if err != nil {
			panic(err) // only possible with a non-positive size
		}
		compileCache = c
	})
	return compileCache
}

// compileModel loads the model directory and compiles it through the
// shared cache.
func compileModel(dir string) (*ir.SystemIR, *Model, error) {
	model, err := LoadModel(dir)
	if err != nil {
		return nil, nil, err
	}
	system, err := sharedCache().GetOrCompile(cache.SourceKey(model.Source), func() (*ir.SystemIR, error) {
		return compiler.Compile(model.Name, model.Root)
	})
	if err != nil {
		return nil, nil, err
	}
	return system, model, nil
}

// NewCompileCommand creates the compile command.
func NewCompileCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CompileOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "compile <model-dir>",
		Short: "Compile a CUE composition model to system IR",
		Long: `Compile a CUE composition model to the flat system IR.

The compiler builds the block tree, extracts block records, wirings and
the hierarchy, and outputs the IR with its content hash.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors - we handle our own error output
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompileCmd(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output file path")
	cmd.Flags().StringVar(&opts.Archive, "archive", "", "sqlite archive to record the compiled system in")

	return cmd
}

// CompileData is the structured payload of a successful compile.
type CompileData struct {
	System *ir.SystemIR `json:"system" yaml:"system"`
	Hash   string       `json:"hash" yaml:"hash"`
}

func runCompileCmd(opts *CompileOptions, modelDir string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting structured output
		Verbose:   opts.Verbose,
	}

	system, model, err := compileModel(modelDir)
	if err != nil {
		return outputLoadError(formatter, err)
	}
	formatter.VerboseLog("Loaded %d CUE file(s) from %s", model.FileCount, modelDir)

	hash, err := ir.SystemHash(system)
	if err != nil {
		return outputLoadError(formatter, err)
	}

	if opts.Archive != "" {
		if err := archiveSystem(opts.Archive, system); err != nil {
			return outputLoadError(formatter, &LoadError{Code: ErrCodeWriteFailed,
				Message: fmt.Sprintf("archiving system: %v", err)})
		}
		formatter.VerboseLog("Archived system %s in %s", hash, opts.Archive)
	}

	if opts.Output != "" {
		if err := writeIRToFile(system, opts.Output); err != nil {
			return outputLoadError(formatter, &LoadError{Code: ErrCodeWriteFailed,
				Message: fmt.Sprintf("writing output file: %v", err)})
		}
	}

	if formatter.Format != "text" {
		return formatter.Success(CompileData{System: system, Hash: hash})
	}

	// Human-readable text output
	fmt.Fprintf(formatter.Writer, "✓ Compiled %s: %d block(s), %d wiring(s)\n",
		system.Name, len(system.Blocks), len(system.Wirings))
	fmt.Fprintf(formatter.Writer, "  hash: %s\n", hash)
	if opts.Output != "" {
		fmt.Fprintf(formatter.Writer, "  wrote IR to %s\n", opts.Output)
	}
	return nil
}

// archiveSystem records the compiled system in the sqlite archive.
func archiveSystem(path string, system *ir.SystemIR) error {
	st, err := store.Open(path)
	if err != nil {
		return err
	}
	defer st.Close()
	_, err = st.PutSystem(context.Background(), system)
	return err
}

// outputLoadError renders a load or compile failure and maps it to a
// command-level exit code.
func outputLoadError(formatter *OutputFormatter, err error) error {
	code := ErrCodeGeneric
	message := err.Error()
	var loadErr *LoadError
	if errors.As(err, &loadErr) {
		code = loadErr.Code
		message = loadErr.Message
	}
	_ = formatter.Error(code, message, nil)
	return WrapExitError(ExitCommandError, fmt.Sprintf("%s: %s", code, message), nil)
}

// writeIRToFile writes the system IR to a file as indented JSON.
// Canonical JSON without indentation is used only for hashing.
func writeIRToFile(system *ir.SystemIR, filename string) error {
	data, err := json.MarshalIndent(system, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling IR: %w", err)
	}
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("writing file: %w", err)
	}
	return nil
}
