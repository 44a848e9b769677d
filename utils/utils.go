package utils

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/twmb/murmur3"
)

func HashString(s string) uint64 {
	return murmur3.Sum64([]byte(s))
}

// ReadSet loads a word list, one entry per line. Lines are trimmed, blank
// ones and '#' comments are skipped. A non-nil key maps each entry before
// it is stored.
func ReadSet(filePath string, key func(string) string) (map[string]bool, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return readSet(file, key)
}

func readSet(r io.Reader, key func(string) string) (map[string]bool, error) {
	result := make(map[string]bool)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || line[0] == '#' {
			continue
		}
		if key != nil {
			line = key(line)
		}
		result[line] = true
	}
	return result, scanner.Err()
}
