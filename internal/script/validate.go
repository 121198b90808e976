package script

import (
	"os"
	"path/filepath"

	"github.com/Aman-CERP/scriptkit/internal/errors"
)

// ValidateInputs checks that input exists and that output may be written.
// An existing output is rejected unless force is set. Both checks run before
// the output's missing parent directories are created.
func ValidateInputs(input, output string, force bool) error {
	if _, err := os.Stat(input); err != nil {
		if os.IsNotExist(err) {
			return errors.New(errors.ErrCodeInputNotFound, "Input path does not exist: "+input, err).
				WithDetail("path", input)
		}
		return errors.New(errors.ErrCodeFilePermission, "Cannot access input path: "+input, err).
			WithDetail("path", input)
	}

	if err := checkOutput(output, force); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(output), 0o755); err != nil {
		return errors.New(errors.ErrCodeFilePermission, "Cannot create output directory", err).
			WithDetail("path", filepath.Dir(output))
	}
	return nil
}

// checkOutput rejects a directory output, and an existing output unless force is set.
func checkOutput(output string, force bool) error {
	info, err := os.Stat(output)
	switch {
	case err == nil && info.IsDir():
		return errors.New(errors.ErrCodeInvalidPath, "Output path is a directory: "+output, nil).
			WithDetail("path", output)
	case err == nil && !force:
		return errors.New(errors.ErrCodeOutputExists, "Output file exists and --force not specified: "+output, nil).
			WithDetail("path", output).
			WithSuggestion("Pass --force to overwrite it")
	case err != nil && !os.IsNotExist(err):
		return errors.New(errors.ErrCodeFilePermission, "Cannot access output path: "+output, err).
			WithDetail("path", output)
	}
	return nil
}
