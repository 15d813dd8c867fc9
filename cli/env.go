// ABOUTME: Shared command environment and output helpers for the CLI
// ABOUTME: Carries the database, feed builder, logger and output writer into each command
package cli

import (
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/term"

	"github.com/harperreed/courtside/db"
	"github.com/harperreed/courtside/feed"
	"github.com/harperreed/courtside/models"
)

// Env is what every command needs to run.
type Env struct {
	DB      *sql.DB
	Builder *feed.Builder
	Log     zerolog.Logger
	Out     io.Writer
	In      io.Reader
}

// NewEnv returns an environment writing to stdout and reading from stdin.
func NewEnv(database *sql.DB, builder *feed.Builder, log zerolog.Logger) *Env {
	if builder == nil {
		builder = feed.NewBuilder()
	}
	return &Env{DB: database, Builder: builder, Log: log, Out: os.Stdout, In: os.Stdin}
}

var headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#04B575"))

// heading renders s bold and colored when Out is a terminal.
func (e *Env) heading(s string) string {
	if f, ok := e.Out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return headingStyle.Render(s)
	}
	return s
}

func (e *Env) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(e.Out, format, args...)
}

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

// readInput reads a file path, or the command input when path is "-".
func (e *Env) readInput(path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(e.In)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}

// ResolveViewer finds a viewer by UUID, UUID prefix or exact name.
func ResolveViewer(database *sql.DB, ref string) (*models.Viewer, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, usagef("--viewer is required")
	}

	if id, err := uuid.Parse(ref); err == nil {
		return db.GetViewer(database, id)
	}

	viewers, err := db.FindViewers(database, "", 1000)
	if err != nil {
		return nil, err
	}

	var found []models.Viewer
	for _, v := range viewers {
		if strings.EqualFold(v.Name, ref) || strings.HasPrefix(v.ID.String(), strings.ToLower(ref)) {
			found = append(found, v)
		}
	}

	switch len(found) {
	case 0:
		return nil, fmt.Errorf("viewer %q: %w", ref, db.ErrNotFound)
	case 1:
		return &found[0], nil
	default:
		return nil, fmt.Errorf("viewer %q is ambiguous (%d matches)", ref, len(found))
	}
}

// IsUsageError reports whether err came from bad command-line input.
func IsUsageError(err error) bool {
	return errors.Is(err, flag.ErrHelp) || errors.As(err, new(*usageError))
}

type usageError struct{ msg string }

func (u *usageError) Error() string { return u.msg }

// NewUsageError reports bad command-line input; main prints usage for it.
func NewUsageError(format string, args ...any) error {
	return usagef(format, args...)
}

func usagef(format string, args ...any) error {
	return &usageError{msg: fmt.Sprintf(format, args...)}
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
