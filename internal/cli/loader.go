package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/load"

	"github.com/weftlab/weft/internal/block"
)

// Error codes surfaced by the loader and commands. Stable strings; scripts
// match on them.
const (
	ErrCodeGeneric     = "E001" // Generic/unknown error
	ErrCodeScanError   = "E002" // Directory scan error
	ErrCodeNoFiles     = "E003" // No CUE files found
	ErrCodeLoadFailed  = "E004" // CUE load failed
	ErrCodeNotFound    = "E005" // Path not found
	ErrCodeBuildFailed = "E006" // CUE build failed
	ErrCodeWriteFailed = "E007" // File write error
	ErrCodeBadModel    = "E008" // Model shape or composition invalid
)

// LoadError is an error raised while loading a model directory.
type LoadError struct {
	Code    string
	Message string
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Model is a loaded, fully constructed composition tree plus the raw
// source bytes that produced it (the compile-cache key input).
type Model struct {
	Name      string
	Root      block.Block
	Source    []byte
	FileCount int
}

// LoadModel loads and builds the model from all CUE files in dir. The
// block tree is constructed through the algebra constructors, so
// construction-time checks (role constraints, sequential type matching,
// temporal direction) fire here, before anything is compiled.
func LoadModel(dir string) (*Model, error) {
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("model directory not found: %s", dir)}
	}
	if err != nil {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("error accessing model directory: %v", err)}
	}
	if !info.IsDir() {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("not a directory: %s", dir)}
	}

	cueFiles, err := findCUEFiles(dir)
	if err != nil {
		return nil, &LoadError{Code: ErrCodeScanError, Message: fmt.Sprintf("error scanning directory: %v", err)}
	}
	if len(cueFiles) == 0 {
		return nil, &LoadError{Code: ErrCodeNoFiles, Message: fmt.Sprintf("no CUE files found in %s", dir)}
	}

	var source []byte
	for _, f := range cueFiles {
		data, err := os.ReadFile(f)
		if err != nil {
			return nil, &LoadError{Code: ErrCodeScanError, Message: fmt.Sprintf("reading %s: %v", f, err)}
		}
		source = append(source, data...)
	}

	ctx := cuecontext.New()
	instances := load.Instances([]string{"."}, &load.Config{Dir: dir})
	if len(instances) == 0 {
		return nil, &LoadError{Code: ErrCodeLoadFailed, Message: "no CUE instances loaded"}
	}
	inst := instances[0]
	if inst.Err != nil {
		return nil, &LoadError{Code: ErrCodeLoadFailed, Message: fmt.Sprintf("loading CUE files: %v", inst.Err)}
	}
	value := ctx.BuildInstance(inst)
	if err := value.Err(); err != nil {
		return nil, &LoadError{Code: ErrCodeBuildFailed, Message: fmt.Sprintf("building CUE value: %v", err)}
	}

	systemVal := value.LookupPath(cue.ParsePath("system"))
	if !systemVal.Exists() {
		return nil, &LoadError{Code: ErrCodeBadModel, Message: "no \"system\" struct found in model"}
	}

	name := filepath.Base(dir)
	if nameVal := systemVal.LookupPath(cue.ParsePath("name")); nameVal.Exists() {
		if name, err = nameVal.String(); err != nil {
			return nil, &LoadError{Code: ErrCodeBadModel, Message: fmt.Sprintf("system.name: %v", err)}
		}
	}

	table, err := parseBlocks(systemVal.LookupPath(cue.ParsePath("blocks")))
	if err != nil {
		return nil, err
	}

	composeVal := systemVal.LookupPath(cue.ParsePath("compose"))
	if !composeVal.Exists() {
		return nil, &LoadError{Code: ErrCodeBadModel, Message: "system.compose is required"}
	}
	root, err := parseCompose(composeVal, table, make(map[string]bool))
	if err != nil {
		return nil, err
	}

	return &Model{Name: name, Root: root, Source: source, FileCount: len(cueFiles)}, nil
}

// findCUEFiles walks the directory and returns all .cue file paths in
// sorted order, so concatenated source bytes are deterministic.
func findCUEFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && filepath.Ext(path) == ".cue" {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// parseBlocks builds every declared atomic block through the algebra.
func parseBlocks(v cue.Value) (map[string]*block.Atomic, error) {
	table := make(map[string]*block.Atomic)
	if !v.Exists() {
		return nil, &LoadError{Code: ErrCodeBadModel, Message: "system.blocks is required"}
	}
	iter, err := v.Fields()
	if err != nil {
		return nil, &LoadError{Code: ErrCodeBadModel, Message: fmt.Sprintf("system.blocks: %v", err)}
	}
	for iter.Next() {
		name := iter.Label()
		decl := iter.Value()

		roleVal := decl.LookupPath(cue.ParsePath("role"))
		if !roleVal.Exists() {
			return nil, &LoadError{Code: ErrCodeBadModel, Message: fmt.Sprintf("block %q: role is required", name)}
		}
		roleStr, err := roleVal.String()
		if err != nil {
			return nil, &LoadError{Code: ErrCodeBadModel, Message: fmt.Sprintf("block %q: role: %v", name, err)}
		}
		role, err := block.ParseRole(roleStr)
		if err != nil {
			return nil, &LoadError{Code: ErrCodeBadModel, Message: fmt.Sprintf("block %q: %v", name, err)}
		}

		iface := block.Interface{}
		for _, slot := range []struct {
			field string
			ports *[]block.Port
		}{
			{"forward_in", &iface.ForwardIn},
			{"forward_out", &iface.ForwardOut},
			{"backward_in", &iface.BackwardIn},
			{"backward_out", &iface.BackwardOut},
		} {
			names, err := stringList(decl.LookupPath(cue.ParsePath(slot.field)))
			if err != nil {
				return nil, &LoadError{Code: ErrCodeBadModel, Message: fmt.Sprintf("block %q: %s: %v", name, slot.field, err)}
			}
			*slot.ports = block.NewPorts(names...)
		}

		atomic, err := block.NewAtomic(name, iface, role)
		if err != nil {
			return nil, &LoadError{Code: ErrCodeBadModel, Message: err.Error()}
		}
		table[name] = atomic
	}
	return table, nil
}

// parseCompose builds the composition tree from a compose expression.
// Each declared block may appear at most once: blocks own their position
// in the tree exclusively.
func parseCompose(v cue.Value, table map[string]*block.Atomic, used map[string]bool) (block.Block, error) {
	if ref := v.LookupPath(cue.ParsePath("block")); ref.Exists() {
		name, err := ref.String()
		if err != nil {
			return nil, &LoadError{Code: ErrCodeBadModel, Message: fmt.Sprintf("compose.block: %v", err)}
		}
		atomic, ok := table[name]
		if !ok {
			return nil, &LoadError{Code: ErrCodeBadModel, Message: fmt.Sprintf("compose references undeclared block %q", name)}
		}
		if used[name] {
			return nil, &LoadError{Code: ErrCodeBadModel, Message: fmt.Sprintf("block %q used more than once in compose", name)}
		}
		used[name] = true
		return atomic, nil
	}

	if seqVal := v.LookupPath(cue.ParsePath("seq")); seqVal.Exists() {
		children, err := composeList(seqVal, table, used)
		if err != nil {
			return nil, err
		}
		if len(children) < 2 {
			return nil, &LoadError{Code: ErrCodeBadModel, Message: "compose.seq needs at least two elements"}
		}
		wirings, err := parseWirings(v.LookupPath(cue.ParsePath("wiring")))
		if err != nil {
			return nil, err
		}
		if len(wirings) > 0 && len(children) != 2 {
			return nil, &LoadError{Code: ErrCodeBadModel, Message: "explicit wiring requires a two-element seq"}
		}
		result := children[0]
		for i := 1; i < len(children); i++ {
			var seq block.Block
			var serr error
			if len(wirings) > 0 {
				seq, serr = block.Sequential(result, children[i], wirings...)
			} else {
				seq, serr = block.Sequential(result, children[i])
			}
			if serr != nil {
				return nil, &LoadError{Code: ErrCodeBadModel, Message: serr.Error()}
			}
			result = seq
		}
		return result, nil
	}

	if parVal := v.LookupPath(cue.ParsePath("par")); parVal.Exists() {
		children, err := composeList(parVal, table, used)
		if err != nil {
			return nil, err
		}
		if len(children) < 2 {
			return nil, &LoadError{Code: ErrCodeBadModel, Message: "compose.par needs at least two elements"}
		}
		result := children[0]
		for i := 1; i < len(children); i++ {
			result = block.Parallel(result, children[i])
		}
		return result, nil
	}

	if fbVal := v.LookupPath(cue.ParsePath("feedback")); fbVal.Exists() {
		inner, err := parseCompose(fbVal.LookupPath(cue.ParsePath("inner")), table, used)
		if err != nil {
			return nil, err
		}
		wirings, err := parseWirings(fbVal.LookupPath(cue.ParsePath("wiring")))
		if err != nil {
			return nil, err
		}
		return block.NewFeedback(inner, wirings), nil
	}

	if tmpVal := v.LookupPath(cue.ParsePath("temporal")); tmpVal.Exists() {
		inner, err := parseCompose(tmpVal.LookupPath(cue.ParsePath("inner")), table, used)
		if err != nil {
			return nil, err
		}
		wirings, err := parseWirings(tmpVal.LookupPath(cue.ParsePath("wiring")))
		if err != nil {
			return nil, err
		}
		exit := ""
		if exitVal := tmpVal.LookupPath(cue.ParsePath("exit")); exitVal.Exists() {
			if exit, err = exitVal.String(); err != nil {
				return nil, &LoadError{Code: ErrCodeBadModel, Message: fmt.Sprintf("temporal.exit: %v", err)}
			}
		}
		loop, err := block.NewTemporal(inner, wirings, exit)
		if err != nil {
			return nil, &LoadError{Code: ErrCodeBadModel, Message: err.Error()}
		}
		return loop, nil
	}

	return nil, &LoadError{Code: ErrCodeBadModel,
		Message: "compose node must have one of: block, seq, par, feedback, temporal"}
}

func composeList(v cue.Value, table map[string]*block.Atomic, used map[string]bool) ([]block.Block, error) {
	iter, err := v.List()
	if err != nil {
		return nil, &LoadError{Code: ErrCodeBadModel, Message: fmt.Sprintf("compose list: %v", err)}
	}
	var out []block.Block
	for iter.Next() {
		child, err := parseCompose(iter.Value(), table, used)
		if err != nil {
			return nil, err
		}
		out = append(out, child)
	}
	return out, nil
}

func parseWirings(v cue.Value) ([]block.Wiring, error) {
	if !v.Exists() {
		return nil, nil
	}
	iter, err := v.List()
	if err != nil {
		return nil, &LoadError{Code: ErrCodeBadModel, Message: fmt.Sprintf("wiring: %v", err)}
	}
	var out []block.Wiring
	for iter.Next() {
		entry := iter.Value()
		w := block.Wiring{Direction: block.Covariant}
		for _, field := range []struct {
			name string
			dst  *string
		}{
			{"source_block", &w.SourceBlock},
			{"source_port", &w.SourcePort},
			{"target_block", &w.TargetBlock},
			{"target_port", &w.TargetPort},
		} {
			fv := entry.LookupPath(cue.ParsePath(field.name))
			if !fv.Exists() {
				return nil, &LoadError{Code: ErrCodeBadModel, Message: fmt.Sprintf("wiring entry: %s is required", field.name)}
			}
			if *field.dst, err = fv.String(); err != nil {
				return nil, &LoadError{Code: ErrCodeBadModel, Message: fmt.Sprintf("wiring entry: %s: %v", field.name, err)}
			}
		}
		if dirVal := entry.LookupPath(cue.ParsePath("direction")); dirVal.Exists() {
			dirStr, err := dirVal.String()
			if err != nil {
				return nil, &LoadError{Code: ErrCodeBadModel, Message: fmt.Sprintf("wiring entry: direction: %v", err)}
			}
			if w.Direction, err = block.ParseDirection(dirStr); err != nil {
				return nil, &LoadError{Code: ErrCodeBadModel, Message: err.Error()}
			}
		}
		out = append(out, w)
	}
	return out, nil
}

func stringList(v cue.Value) ([]string, error) {
	if !v.Exists() {
		return nil, nil
	}
	iter, err := v.List()
	if err != nil {
		return nil, err
	}
	var out []string
	for iter.Next() {
		s, err := iter.Value().String()
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}
