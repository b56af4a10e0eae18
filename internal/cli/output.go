package cli

import (
	"encoding/json"
	"fmt"
	"io"
)

// OutputFormatter writes command results as text or as a CLIResponse
// envelope, depending on --format.
type OutputFormatter struct {
	Format    string
	Writer    io.Writer
	ErrWriter io.Writer // diagnostics; falls back to Writer
	Verbose   bool
}

// CLIResponse is the JSON envelope of every command.
type CLIResponse struct {
	Status string    `json:"status"` // "ok" or "error"
	Data   any       `json:"data,omitempty"`
	Error  *CLIError `json:"error,omitempty"`
	ID     string    `json:"id,omitempty"` // content ID of the ladder the command acted on
}

// CLIError describes a failed command in JSON mode.
type CLIError struct {
	Code    string `json:"code"` // E001, E101, ...
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

func (f *OutputFormatter) json() bool {
	return f.Format == "json"
}

func (f *OutputFormatter) encode(resp CLIResponse, indent bool) error {
	enc := json.NewEncoder(f.Writer)
	if indent {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(resp)
}

// Success writes data. Text mode prints it with fmt.
func (f *OutputFormatter) Success(data any) error {
	return f.SuccessWithID("", data)
}

// SuccessWithID writes data and, in JSON mode, tags the envelope with the
// ladder content ID.
func (f *OutputFormatter) SuccessWithID(id string, data any) error {
	if !f.json() {
		_, err := fmt.Fprintln(f.Writer, data)
		return err
	}
	return f.encode(CLIResponse{Status: "ok", Data: data, ID: id}, false)
}

// Error writes a failure with its CLI error code.
func (f *OutputFormatter) Error(code, message string, details any) error {
	if f.json() {
		return f.encode(CLIResponse{
			Status: "error",
			Error:  &CLIError{Code: code, Message: message, Details: details},
		}, false)
	}

	fmt.Fprintf(f.Writer, "Error [%s]: %s\n", code, message)
	if f.Verbose && details != nil {
		fmt.Fprintf(f.Writer, "Details: %v\n", details)
	}
	return nil
}

// VerboseLog prints a diagnostic line when --verbose is set. It goes to
// ErrWriter so JSON on Writer stays parseable.
func (f *OutputFormatter) VerboseLog(format string, args ...any) {
	if !f.Verbose {
		return
	}
	w := f.ErrWriter
	if w == nil {
		w = f.Writer
	}
	fmt.Fprintf(w, format+"\n", args...)
}
