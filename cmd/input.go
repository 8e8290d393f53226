package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"unicode/utf8"
)

// readSource reads the document named by args, or stdin when args is empty
// or "-". The second result is a short title for status displays.
func readSource(stdin io.Reader, args []string) (string, string, error) {
	var (
		data  []byte
		title string
		err   error
	)
	if len(args) == 0 || args[0] == "-" {
		data, err = io.ReadAll(stdin)
		title = "stdin"
	} else {
		data, err = os.ReadFile(args[0])
		title = filepath.Base(args[0])
	}
	if err != nil {
		return "", "", fmt.Errorf("read input: %w", err)
	}
	if !utf8.Valid(data) {
		return "", "", fmt.Errorf("read input: %s is not valid UTF-8", title)
	}
	return string(data), title, nil
}
