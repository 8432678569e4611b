// Released under an MIT license. See LICENSE.

// Package engine provides an evaluator for parsed unilang code.
package engine

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/michaelmacinnis/unilang/internal/engine/boot"
	"github.com/michaelmacinnis/unilang/internal/engine/commands"
	"github.com/michaelmacinnis/unilang/internal/engine/eval"
	"github.com/michaelmacinnis/unilang/internal/engine/task"
	"github.com/michaelmacinnis/unilang/internal/env"
	"github.com/michaelmacinnis/unilang/internal/reader"
	"github.com/michaelmacinnis/unilang/internal/term"
)

// Config holds the settings for an engine.
type Config struct {
	// CompressThreshold is the number of frame records a chain of tail calls
	// may hold before unneeded records are released.
	CompressThreshold int

	Errors io.Writer // Destination for reports and trace output.
	Logger *slog.Logger
	Output io.Writer // Destination for display.
	Trace  bool
}

// DefaultConfig returns the settings used when none are given.
func DefaultConfig() Config {
	return Config{
		CompressThreshold: task.DefaultCompressThreshold,
		Errors:            os.Stderr,
		Output:            os.Stdout,
	}
}

// Exception is an error that ended the evaluation of a top-level form. It
// records the calls that were in progress, innermost first.
type Exception struct {
	Err    error
	Frames []task.Frame
}

// Error satisfies the error interface.
func (x *Exception) Error() string {
	return x.Err.Error()
}

// Unwrap returns the underlying error.
func (x *Exception) Unwrap() error {
	return x.Err
}

// T (engine) is a facade in front of the machinery for evaluating unilang
// code.
type T struct {
	config Config
	ground *env.T
	task   *task.T
	user   *env.T
}

// New creates a new T. The ground environment is populated with the native
// combiners and the definitions in the boot script and then frozen.
func New(cfg Config) (*T, error) {
	if cfg.CompressThreshold <= 0 {
		cfg.CompressThreshold = task.DefaultCompressThreshold
	}

	if cfg.Errors == nil {
		cfg.Errors = io.Discard
	}

	if cfg.Output == nil {
		cfg.Output = io.Discard
	}

	ground := env.New(nil).Hold()

	if err := commands.Register(ground); err != nil {
		return nil, err
	}

	c := task.New(ground)
	c.CompressThreshold = cfg.CompressThreshold
	c.Output = cfg.Output

	if cfg.Trace {
		c.Log = cfg.Logger
		if c.Log == nil {
			c.Log = slog.New(slog.NewTextHandler(cfg.Errors, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			}))
		}
	}

	e := &T{
		config: cfg,
		ground: ground,
		task:   c,
	}

	c.HandleException = e.exception

	root, err := reader.Read("boot.unl", boot.Script())
	if err != nil {
		return nil, err
	}

	for _, x := range root.Children {
		if _, err := eval.Evaluate(x, ground, c); err != nil {
			return nil, err
		}
	}

	freeze(ground)

	e.user = env.New(ground.Share())

	c.SwitchEnvironment(e.user).Drop()

	return e, nil
}

// Env returns the environment where top-level forms are evaluated.
func (e *T) Env() *env.T {
	return e.user
}

// Evaluate evaluates each child of root in order and returns the value of
// the last. A form that evaluates to a reference is replaced by a copy of
// the value it refers to.
func (e *T) Evaluate(root *term.T) (*term.T, error) {
	last := term.NewAtom(term.Inert)

	for _, x := range root.Children {
		if _, err := eval.Evaluate(x, e.user, e.task); err != nil {
			return nil, err
		}

		if err := task.Lift(x, nil); err != nil {
			return nil, err
		}

		last = x
	}

	return last, nil
}

// EvaluateString reads text and evaluates it. The name identifies the text
// in syntax errors.
func (e *T) EvaluateString(name, text string) (*term.T, error) {
	root, err := reader.Read(name, text)
	if err != nil {
		return nil, err
	}

	return e.Evaluate(root)
}

// Report writes err to the configured error writer with a backtrace.
func (e *T) Report(err error) {
	Report(e.config.Errors, err)
}

// Stats returns the statistics gathered by the engine's task.
func (e *T) Stats() task.Stats {
	return e.task.Stats
}

func (e *T) exception(err error, frames []task.Frame) error {
	var x *Exception
	if errors.As(err, &x) {
		x.Frames = append(x.Frames, frames...)

		return err
	}

	return &Exception{Err: err, Frames: frames}
}

// Report writes err to w. Calls in progress when err was raised are listed,
// innermost first.
func Report(w io.Writer, err error) {
	fmt.Fprintf(w, "error: %s\n", err)

	var x *Exception
	if !errors.As(err, &x) {
		return
	}

	for _, f := range x.Frames {
		fmt.Fprintf(w, "  in %s\n", term.Literal(f.Combiner))
	}
}

// Bindings in the ground environment cannot be changed or modified through
// references.
func freeze(ground *env.T) {
	for _, k := range ground.Names() {
		b, _ := ground.LookupName(k)
		b.Tags |= term.Nonmodifying
	}

	ground.Frozen = true
}
