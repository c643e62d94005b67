package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/weftlab/weft/internal/ir"
	"github.com/weftlab/weft/internal/store"
)

// ShowOptions holds flags for the show command.
type ShowOptions struct {
	*RootOptions
	Archive string
	Hash    string
}

// NewShowCommand creates the show command.
func NewShowCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ShowOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "show [model-dir]",
		Short: "Show the composition hierarchy of a system",
		Long: `Show the composition hierarchy of a system, either by compiling a
model directory or by loading an archived system by hash.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true, // Don't print usage on errors - we handle our own error output
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShowCmd(opts, args, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Archive, "archive", "", "sqlite archive to load the system from")
	cmd.Flags().StringVar(&opts.Hash, "hash", "", "system hash to load from the archive")

	return cmd
}

func runShowCmd(opts *ShowOptions, args []string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	var system *ir.SystemIR
	switch {
	case len(args) == 1:
		var err error
		if system, _, err = compileModel(args[0]); err != nil {
			return outputLoadError(formatter, err)
		}
	case opts.Archive != "" && opts.Hash != "":
		var err error
		if system, err = loadArchivedSystem(opts.Archive, opts.Hash); err != nil {
			code := ErrCodeGeneric
			if errors.Is(err, store.ErrNotFound) {
				code = ErrCodeNotFound
			}
			return outputLoadError(formatter, &LoadError{Code: code, Message: err.Error()})
		}
	default:
		return outputLoadError(formatter, &LoadError{Code: ErrCodeGeneric,
			Message: "either a model directory or both --archive and --hash are required"})
	}

	if formatter.Format != "text" {
		return formatter.Success(system.Hierarchy)
	}

	fmt.Fprintf(formatter.Writer, "%s (%d block(s), %d wiring(s))\n",
		system.Name, len(system.Blocks), len(system.Wirings))
	printHierarchy(formatter, system.Hierarchy, 1)
	return nil
}

func loadArchivedSystem(path, hash string) (*ir.SystemIR, error) {
	st, err := store.Open(path)
	if err != nil {
		return nil, err
	}
	defer st.Close()
	return st.GetSystem(context.Background(), hash)
}

func printHierarchy(formatter *OutputFormatter, node *ir.HierarchyNode, depth int) {
	if node == nil {
		return
	}
	indent := strings.Repeat("  ", depth)
	if node.IsLeaf() {
		fmt.Fprintf(formatter.Writer, "%s%s [%s]\n", indent, node.BlockName, node.ID)
		return
	}
	label := node.CompositionType
	if node.ExitCondition != "" {
		label += " exit=" + node.ExitCondition
	}
	fmt.Fprintf(formatter.Writer, "%s%s (%s) [%s]\n", indent, node.Name, label, node.ID)
	for _, child := range node.Children {
		printHierarchy(formatter, child, depth+1)
	}
}
