package config

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// MaxAPIKeyFileBytes bounds the size of an api_key_file.
const MaxAPIKeyFileBytes int64 = 4 * 1024

var errEmptyKeyFile = errors.New("api key file is empty")

// ReadAPIKeyFile returns the key stored in path. Blank lines and lines
// starting with '#' are ignored; the first remaining line is the key.
func ReadAPIKeyFile(path string) (string, error) {
	clean, err := expandHome(path)
	if err != nil {
		return "", err
	}

	f, err := os.Open(clean)
	if err != nil {
		return "", fmt.Errorf("open api key file: %w", err)
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		return "", fmt.Errorf("stat api key file: %w", err)
	}
	if !st.Mode().IsRegular() {
		return "", fmt.Errorf("api key file %s is not a regular file", clean)
	}

	data, err := io.ReadAll(io.LimitReader(f, MaxAPIKeyFileBytes+1))
	if err != nil {
		return "", fmt.Errorf("read api key file: %w", err)
	}
	if int64(len(data)) > MaxAPIKeyFileBytes {
		return "", fmt.Errorf("api key file exceeds %d bytes", MaxAPIKeyFileBytes)
	}

	return parseKey(data)
}

func parseKey(data []byte) (string, error) {
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.ContainsAny(line, " \t") {
			return "", errors.New("api key file contains whitespace inside the key")
		}
		return line, nil
	}
	if err := sc.Err(); err != nil {
		return "", fmt.Errorf("scan api key file: %w", err)
	}
	return "", errEmptyKeyFile
}

func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return filepath.Clean(path), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("expand ~ in api key file: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}
