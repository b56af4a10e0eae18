package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/amida/internal/codec"
	"github.com/roach88/amida/internal/ladder"
	"github.com/roach88/amida/internal/loader"
)

// FileValidation is the validation outcome of one ladder file.
type FileValidation struct {
	File    string `json:"file"`
	Valid   bool   `json:"valid"`
	ID      string `json:"id,omitempty"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
	Line    int    `json:"line,omitempty"`
}

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid bool             `json:"valid"`
	Files []FileValidation `json:"files"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <ladder-file|dir>...",
		Short: "Check ladder files against the structural invariants",
		Long: `Validate one or more ladder files.

Each file is decoded by extension and checked for grid shape, rung bounds,
label counts and disjointness (no two rungs at one level share a column).
Directories are searched recursively for .json, .yaml, .yml, .cbor and .cue
files.

Exit codes:
  0 - All ladders valid
  1 - One or more ladders invalid
  2 - Command error (missing or unreadable files)`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args, cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, args []string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	files, err := expandLadderArgs(args)
	if err != nil {
		return reportError(formatter, "failed to list ladder files", err)
	}

	result := ValidationResult{Valid: true, Files: make([]FileValidation, 0, len(files))}
	exitCode := ExitSuccess

	for _, file := range files {
		fv := validateFile(file)
		formatter.VerboseLog("Validated %s: valid=%t", file, fv.Valid)
		if formatter.Verbose && strings.EqualFold(filepath.Ext(file), ".cbor") {
			logCBORDiagnostic(formatter, file)
		}
		result.Files = append(result.Files, fv)
		if fv.Valid {
			continue
		}
		result.Valid = false
		if c := exitCodeFor(fv.Code); c > exitCode {
			exitCode = c
		}
	}

	if opts.Format == "json" {
		response := CLIResponse{Status: "ok", Data: result}
		if !result.Valid {
			first := firstInvalid(result.Files)
			response.Status = "error"
			response.Error = &CLIError{Code: first.Code, Message: first.Message}
		}
		if len(result.Files) == 1 {
			response.ID = result.Files[0].ID
		}
		if err := formatter.encode(response, true); err != nil {
			return err
		}
	} else {
		outputValidateText(formatter, result)
	}

	if exitCode != ExitSuccess {
		return NewExitError(exitCode, fmt.Sprintf("validation failed for %d file(s)", countInvalid(result.Files)))
	}
	return nil
}

// expandLadderArgs replaces every directory argument with the ladder files
// beneath it. Other arguments are kept as given so a missing file is
// reported by validateFile.
func expandLadderArgs(args []string) ([]string, error) {
	files := make([]string, 0, len(args))
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil || !info.IsDir() {
			files = append(files, arg)
			continue
		}
		found, err := loader.FindLadderFiles(arg)
		if err != nil {
			return nil, err
		}
		files = append(files, found...)
	}
	return files, nil
}

// validateFile loads one file; the loader runs ladder.Validate.
func validateFile(file string) FileValidation {
	l, err := loader.LoadLadder(file)
	if err != nil {
		fv := FileValidation{File: file, Code: loader.CodeFor(err), Message: err.Error()}
		var le *loader.LoadError
		if errors.As(err, &le) {
			fv.Message = le.Message
			if le.Pos.IsValid() {
				fv.Line = le.Pos.Line()
			}
		}
		return fv
	}

	id, err := ladder.ID(l)
	if err != nil {
		return FileValidation{File: file, Code: loader.ErrCodeGeneric, Message: err.Error()}
	}
	return FileValidation{File: file, Valid: true, ID: id}
}

// logCBORDiagnostic prints the diagnostic notation of a CBOR ladder file so
// a file that fails to decode can still be inspected.
func logCBORDiagnostic(formatter *OutputFormatter, file string) {
	data, err := os.ReadFile(file)
	if err != nil {
		return
	}
	diag, err := codec.Diagnose(data)
	if err != nil {
		formatter.VerboseLog("%s: not well-formed CBOR: %v", file, err)
		return
	}
	formatter.VerboseLog("%s: %s", file, diag)
}

func outputValidateText(formatter *OutputFormatter, result ValidationResult) {
	w := formatter.Writer
	for _, fv := range result.Files {
		if fv.Valid {
			fmt.Fprintf(w, "✓ %s\n", fv.File)
			continue
		}
		fmt.Fprintf(w, "✗ %s\n", fv.File)
		if fv.Line > 0 {
			fmt.Fprintf(w, "  line %d\n", fv.Line)
		}
		fmt.Fprintf(w, "  %s: %s\n", fv.Code, fv.Message)
	}

	if result.Valid {
		fmt.Fprintln(w, "✓ All ladders valid")
	}
}

func firstInvalid(files []FileValidation) FileValidation {
	for _, fv := range files {
		if !fv.Valid {
			return fv
		}
	}
	return FileValidation{}
}

func countInvalid(files []FileValidation) int {
	n := 0
	for _, fv := range files {
		if !fv.Valid {
			n++
		}
	}
	return n
}
