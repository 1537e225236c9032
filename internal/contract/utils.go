package contract

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/branflake2267/docs-sub001/schema"
	"github.com/fatih/color"
)

// Color variables for console output.
var (
	AddedColor    = color.New(color.FgGreen, color.Bold) // AddedColor marks new classes and members.
	RemovedColor  = color.New(color.FgRed, color.Bold)   // RemovedColor marks removed classes and members.
	ModifiedColor = color.New(color.FgYellow)            // ModifiedColor marks changed classes and members.
)

// GetKindLabel returns a colored label for a change kind when colors are enabled.
func GetKindLabel(kind schema.ChangeKind, useColors bool) string {
	text := string(kind)
	if !useColors {
		return text
	}
	switch kind {
	case schema.AddedKind:
		return AddedColor.Sprint(text)
	case schema.RemovedKind:
		return RemovedColor.Sprint(text)
	default:
		return ModifiedColor.Sprint(text)
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on the provided
// file path. An empty path selects os.Stdout.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// NewLogger returns the structured logger used for diff warnings.
// Verbose mode also emits debug records such as ignored items.
func NewLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// GetCacheDBFilePath returns the path to the SQLite DB file for cache storage.
func GetCacheDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".docdiff_cache.db"
	}
	return filepath.Join(homeDir, ".docdiff_cache.db")
}

// GetHistoryDBFilePath returns the path to the SQLite DB file for run history.
func GetHistoryDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".docdiff_history.db"
	}
	return filepath.Join(homeDir, ".docdiff_history.db")
}

// TruncateName truncates a name to a maximum width with ellipsis prefix.
// Requires maxWidth > 3 to leave room for the prefix and at least one character.
func TruncateName(name string, maxWidth int) string {
	runes := []rune(name)
	if len(runes) > maxWidth && maxWidth > 3 {
		return "..." + string(runes[len(runes)-maxWidth+3:])
	}
	return name
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}
