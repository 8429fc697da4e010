// Package explain hands a problem to an external LLM command line tool
// together with a prompt template and any local files the user supplied.
package explain

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/okian/ladder/pkg/logger"
)

//go:embed prompts/*.md
var builtinPrompts embed.FS

// Mode selects the prompt template.
type Mode string

// Prompt modes.
const (
	ModeExplain Mode = "explain"
	ModeReview  Mode = "review"
	ModeSolve   Mode = "solve"
)

// ModeFor picks review when the user supplied code and explain otherwise.
func ModeFor(codeFile string) Mode {
	if codeFile != "" {
		return ModeReview
	}
	return ModeExplain
}

func (m Mode) template() string { return string(m) + ".md" }

// Request describes one explainer invocation.
type Request struct {
	Mode          Mode
	Slug          string
	Rating        *float64 // nil when the slug is not indexed
	StatementFile string
	CodeFile      string
}

// Runner builds prompts and runs the explainer command.
type Runner struct {
	command    string
	model      string
	promptsDir string
	stdin      io.Reader
	stdout     io.Writer
	stderr     io.Writer
	logger     logger.Logger
}

// Option configures a Runner.
type Option func(*Runner)

// WithCommand sets the explainer executable.
func WithCommand(cmd string) Option {
	return func(r *Runner) {
		if cmd != "" {
			r.command = cmd
		}
	}
}

// WithModel sets the model passed with -m.
func WithModel(model string) Option {
	return func(r *Runner) {
		if model != "" {
			r.model = model
		}
	}
}

// WithPromptsDir sets a directory whose templates override the built-in ones.
func WithPromptsDir(dir string) Option {
	return func(r *Runner) { r.promptsDir = dir }
}

// WithIO sets the streams handed to the explainer process.
func WithIO(stdin io.Reader, stdout, stderr io.Writer) Option {
	return func(r *Runner) {
		r.stdin = stdin
		if stdout != nil {
			r.stdout = stdout
		}
		if stderr != nil {
			r.stderr = stderr
		}
	}
}

// WithLogger sets the runner logger.
func WithLogger(l logger.Logger) Option {
	return func(r *Runner) {
		if l != nil {
			r.logger = l
		}
	}
}

// New returns a Runner for the gemini CLI unless configured otherwise.
func New(opts ...Option) *Runner {
	r := &Runner{
		command: "gemini",
		model:   "gemini-2.5-pro",
		stdout:  os.Stdout,
		stderr:  os.Stderr,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = logger.Named("explain")
	}
	return r
}

// Template returns the prompt template for mode. A file in the prompts
// directory wins over the built-in copy.
func (r *Runner) Template(mode Mode) (string, error) {
	name := mode.template()
	if r.promptsDir != "" {
		b, err := os.ReadFile(filepath.Join(r.promptsDir, name))
		if err == nil {
			return string(b), nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %w", ErrPromptUnavailable, err)
		}
	}
	b, err := builtinPrompts.ReadFile("prompts/" + name)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrPromptUnavailable, name)
	}
	return string(b), nil
}

// Prompt renders the full prompt: template, separator, then the variables.
func (r *Runner) Prompt(req Request) (string, error) {
	body, err := r.Template(req.Mode)
	if err != nil {
		return "", err
	}
	return body + "\n\n---\n" + Variables(req) + "\n", nil
}

// Variables renders the key/value block appended to every prompt. File
// entries appear only for files that exist.
func Variables(req Request) string {
	var b strings.Builder
	b.WriteString("Slug: " + req.Slug + "\n")
	b.WriteString("Rating: " + formatRating(req.Rating) + "\n")
	if exists(req.StatementFile) {
		b.WriteString("Statement file: " + req.StatementFile + "\n")
	}
	if exists(req.CodeFile) {
		b.WriteString("User code: " + req.CodeFile + "\n")
	}
	return b.String()
}

// Args returns the explainer arguments for prompt, attaching existing files.
func (r *Runner) Args(req Request, prompt string) []string {
	args := []string{"-m", r.model, "-p", prompt}
	for _, f := range []string{req.StatementFile, req.CodeFile} {
		if exists(f) {
			args = append(args, "-f", f)
		}
	}
	return args
}

// Run renders the prompt and runs the explainer with output passed through.
func (r *Runner) Run(ctx context.Context, req Request) error {
	prompt, err := r.Prompt(req)
	if err != nil {
		return err
	}
	path, err := exec.LookPath(r.command)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrExplainerNotFound, r.command)
	}

	args := r.Args(req, prompt)
	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Stdin = r.stdin
	cmd.Stdout = r.stdout
	cmd.Stderr = r.stderr

	r.logger.Debug(ctx, "running explainer",
		logger.String("command", path),
		logger.String("mode", string(req.Mode)),
		logger.String("slug", req.Slug),
		logger.Int("attachments", (len(args)-4)/2),
	)

	start := time.Now()
	err = cmd.Run()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return fmt.Errorf("%w: exit code %d", ErrExplainerFailed, exitErr.ExitCode())
		}
		return fmt.Errorf("%w: %w", ErrExplainerFailed, err)
	}
	r.logger.Debug(ctx, "explainer finished", logger.Any("duration", time.Since(start)))
	return nil
}

func formatRating(r *float64) string {
	if r == nil {
		return "unknown"
	}
	return strconv.FormatFloat(*r, 'f', -1, 64)
}

func exists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}
