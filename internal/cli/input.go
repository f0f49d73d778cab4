package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// readText returns inline when set, otherwise the content of file ("-" reads
// stdin).
func readText(inline, file string, stdin io.Reader) (string, error) {
	if strings.TrimSpace(inline) != "" {
		return inline, nil
	}
	if file == "" {
		return "", errors.New("provide the text inline or with --file")
	}

	var data []byte
	var err error
	if file == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(file)
	}
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", file, err)
	}
	if strings.TrimSpace(string(data)) == "" {
		return "", fmt.Errorf("%s is empty", file)
	}
	return string(data), nil
}
