// Package loader reads and writes ladder files. The format is chosen by file
// extension; every loaded ladder has passed ladder.Validate.
package loader

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue/token"
	"gopkg.in/yaml.v3"

	"github.com/roach88/amida/internal/codec"
	"github.com/roach88/amida/internal/compiler"
	"github.com/roach88/amida/internal/ladder"
)

// Error code constants - shared with the CLI.
const (
	ErrCodeGeneric      = "E001" // Generic/unknown error
	ErrCodeNotFound     = "E005" // Path not found
	ErrCodeWriteFailed  = "E007" // File write error
	ErrCodeUnsupported  = "E008" // Unknown ladder file extension
	ErrCodeDecodeFailed = "E009" // Ladder file could not be decoded

	// Ladder errors
	ErrCodeInvalidRequest = "E101" // Bad generation parameters
	ErrCodeOutOfRange     = "E102" // Start index outside the ladder
	ErrCodeCorruptLadder  = "E103" // Ladder breaks a structural invariant
)

// Extensions lists the supported ladder file extensions.
var Extensions = []string{".json", ".yaml", ".yml", ".cbor", ".cue"}

// LoadError represents an error that occurred while reading a ladder file.
type LoadError struct {
	Code    string
	Path    string
	Message string
	Pos     token.Pos // CUE position if available
	Err     error
}

func (e *LoadError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Code, e.Message)
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %s: %s", e.Path, e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// CodeFor maps a ladder error to its CLI error code.
func CodeFor(err error) string {
	switch {
	case ladder.IsInvalidRequest(err):
		return ErrCodeInvalidRequest
	case ladder.IsOutOfRange(err):
		return ErrCodeOutOfRange
	case ladder.IsCorruptLadder(err):
		return ErrCodeCorruptLadder
	}
	var le *LoadError
	if errors.As(err, &le) {
		return le.Code
	}
	return ErrCodeGeneric
}

// Supported reports whether path has a ladder file extension.
func Supported(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range Extensions {
		if e == ext {
			return true
		}
	}
	return false
}

// LoadLadder reads the ladder file at path.
func LoadLadder(path string) (ladder.Ladder, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return ladder.Ladder{}, &LoadError{Code: ErrCodeNotFound, Path: path, Message: "file not found", Err: err}
		}
		return ladder.Ladder{}, &LoadError{Code: ErrCodeGeneric, Path: path, Message: err.Error(), Err: err}
	}
	return DecodeLadder(data, path)
}

// DecodeLadder decodes data in the format implied by name's extension.
func DecodeLadder(data []byte, name string) (ladder.Ladder, error) {
	var (
		l   ladder.Ladder
		err error
	)

	switch ext := strings.ToLower(filepath.Ext(name)); ext {
	case ".json":
		err = decodeJSON(data, &l)
	case ".yaml", ".yml":
		err = decodeYAML(data, &l)
	case ".cbor":
		l, err = codec.UnmarshalLadder(data)
	case ".cue":
		return decodeCUE(data, name)
	default:
		return ladder.Ladder{}, &LoadError{
			Code:    ErrCodeUnsupported,
			Path:    name,
			Message: fmt.Sprintf("unsupported extension %q (want one of %v)", ext, Extensions),
		}
	}
	if err != nil {
		return ladder.Ladder{}, &LoadError{Code: ErrCodeDecodeFailed, Path: name, Message: err.Error(), Err: err}
	}

	if err := ladder.Validate(l); err != nil {
		return ladder.Ladder{}, &LoadError{Code: ErrCodeCorruptLadder, Path: name, Message: err.Error(), Err: err}
	}
	return l, nil
}

func decodeJSON(data []byte, l *ladder.Ladder) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(l); err != nil {
		return err
	}
	if dec.More() {
		return errors.New("trailing data after ladder")
	}
	return nil
}

func decodeYAML(data []byte, l *ladder.Ladder) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(l); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("empty ladder file")
		}
		return err
	}
	return nil
}

func decodeCUE(data []byte, name string) (ladder.Ladder, error) {
	l, err := compiler.CompileLadderSource(data, name)
	if err != nil {
		code := ErrCodeDecodeFailed
		if ladder.IsCorruptLadder(err) {
			code = ErrCodeCorruptLadder
		}
		le := &LoadError{Code: code, Path: name, Message: err.Error(), Err: err}
		var ce *compiler.CompileError
		if errors.As(err, &ce) {
			le.Message = ce.Field + ": " + ce.Message
			le.Pos = ce.Pos
		}
		return ladder.Ladder{}, le
	}
	return *l, nil
}

// SaveLadder writes l to path in the format implied by its extension.
// CUE output is not supported; CUE files are authored by hand.
func SaveLadder(path string, l ladder.Ladder) error {
	data, err := EncodeLadder(l, path)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return &LoadError{Code: ErrCodeWriteFailed, Path: path, Message: err.Error(), Err: err}
	}
	return nil
}

// EncodeLadder encodes l in the format implied by name's extension.
func EncodeLadder(l ladder.Ladder, name string) ([]byte, error) {
	switch ext := strings.ToLower(filepath.Ext(name)); ext {
	case ".json":
		data, err := json.MarshalIndent(l, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encode json: %w", err)
		}
		return append(data, '\n'), nil
	case ".yaml", ".yml":
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(l); err != nil {
			return nil, fmt.Errorf("encode yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("encode yaml: %w", err)
		}
		return buf.Bytes(), nil
	case ".cbor":
		data, err := codec.MarshalLadder(l)
		if err != nil {
			return nil, fmt.Errorf("encode cbor: %w", err)
		}
		return data, nil
	default:
		return nil, &LoadError{
			Code:    ErrCodeUnsupported,
			Path:    name,
			Message: fmt.Sprintf("cannot write %q files (want .json, .yaml, .yml or .cbor)", ext),
		}
	}
}

// FindLadderFiles walks dir and returns every supported ladder file.
func FindLadderFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && Supported(path) {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}
