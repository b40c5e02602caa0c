package output

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode"
)

type Method int

const (
	MethodOverwrite Method = iota
	MethodNewFile
)

func (method Method) String() string {
	switch method {
	case MethodNewFile:
		return "new-file"
	case MethodOverwrite:
		return "overwrite"
	}
	return "invalid-output-method"
}

func ParseMethod(s string) (Method, error) {
	switch strings.ToLower(s) {
	case "overwrite", "":
		return MethodOverwrite, nil
	case "new-file", "newfile", "new":
		return MethodNewFile, nil
	}
	return MethodOverwrite, fmt.Errorf("unknown output method: %q (expected overwrite or new-file)", s)
}

func (method Method) MarshalText() ([]byte, error) {
	return []byte(method.String()), nil
}

func (method *Method) UnmarshalText(text []byte) error {
	m, err := ParseMethod(string(text))
	if err != nil {
		return err
	}
	*method = m
	return nil
}

func TrimExt(filename string) (baseFilename, ext string) {
	ext = filepath.Ext(filename)
	baseFilename = strings.TrimSuffix(filename, ext)
	return
}

// Resolve picks the path to write. With MethodNewFile an existing file is
// never reused: the next free "name-N.ext" is chosen instead.
func Resolve(filename string, method Method) (string, error) {
	if method != MethodNewFile {
		return filename, nil
	}
	_, err := os.Stat(filename)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return filename, nil
		}
		return "", fmt.Errorf("%w: %w", ErrIO, err)
	}
	next, _, err := NextLatestIncrementedFilename(filename)
	return next, err
}

// NextLatestIncrementedFilename returns the name after the highest
// "name-N.ext" found next to filename, and its N.
func NextLatestIncrementedFilename(filename string) (string, int, error) {
	baseFilename, _, ext := parseIncrementFilename(filename)
	entries, err := os.ReadDir(filepath.Dir(filename))
	if err != nil {
		return "", 0, fmt.Errorf("%w: %w", ErrIO, err)
	}

	name := filepath.Base(baseFilename)
	maxNum := 0
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasPrefix(entry.Name(), name) {
			continue
		}
		base, num, ext2 := parseIncrementFilename(entry.Name())
		if num > maxNum && ext == ext2 && base == name {
			maxNum = num
		}
	}

	maxNum++

	return fmt.Sprintf("%v-%v%v", baseFilename, maxNum, ext), maxNum, nil
}

func parseIncrementFilename(filename string) (base string, num int, ext string) {
	fileExt := filepath.Ext(filename)
	filename = strings.TrimSuffix(filename, fileExt)

	if filename == "" && fileExt != "" {
		filename, fileExt = fileExt, ""
	}

	i := len(filename) - 1
	if i < 0 {
		return "", 0, ""
	}

	for ; i >= 0; i-- {
		ch := rune(filename[i])
		if !unicode.IsDigit(ch) {
			break
		}
	}

	digits := filename[i+1:]
	filename = filename[0 : i+1]

	if filename != "" && filename[len(filename)-1] == '-' {
		filename = filename[0 : len(filename)-1]
	}

	if n, err := strconv.Atoi(digits); err == nil {
		num = n
	}

	return filename, num, fileExt
}
