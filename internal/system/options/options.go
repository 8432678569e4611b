// Released under an MIT license. See LICENSE.

// Package options parses unilang's command line.
package options

import (
	"os"

	"github.com/docopt/docopt-go"
	"github.com/mattn/go-isatty"
)

// Version is reported by -v.
const Version = "unilang 0.1.0"

//nolint:gochecknoglobals
var (
	args        []string
	command     string
	interactive bool
	script      string
	trace       bool
	usage       = `unilang

Usage:
  unilang [-t] SCRIPT [ARGUMENTS...]
  unilang [-it] -c COMMAND [ARGUMENTS...]
  unilang [-it]
  unilang -h
  unilang -v

Arguments:
  ARGUMENTS  Strings bound to the list 'arguments' in the user environment.
  SCRIPT     Path to a unilang script.

Options:
  -c, --command=COMMAND  Evaluate the specified expressions.
  -i, --interactive      Invert interactive mode.
  -t, --trace            Log each operation performed to stderr.
  -h, --help             Display this help.
  -v, --version          Print unilang version.

If unilang's stdin is a TTY and unilang was invoked with neither a script nor
a command, expressions are read interactively. Otherwise, when there is no
script or command, the program is read from stdin.
`
)

// Args returns the script name, or "unilang", followed by any arguments.
func Args() []string {
	return args
}

// Command returns the expressions passed with -c.
func Command() string {
	return command
}

// Interactive returns true if expressions should be read from a terminal.
func Interactive() bool {
	return interactive
}

// Parse parses the command line. Requests for help or the version, and
// malformed command lines, print a message and exit.
func Parse() error {
	fd := os.Stdin.Fd()
	tty := isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)

	return parse(&docopt.Parser{HelpHandler: docopt.PrintHelpAndExit}, os.Args[1:], tty)
}

// Script returns the path of the script to evaluate, if any.
func Script() string {
	return script
}

// Trace returns true if each operation performed should be logged.
func Trace() bool {
	return trace
}

func parse(p *docopt.Parser, argv []string, tty bool) error {
	opts, err := p.ParseArgs(usage, argv, Version)
	if err != nil {
		return err
	}

	command, _ = opts.String("--command")
	script, _ = opts.String("SCRIPT")
	trace, _ = opts.Bool("--trace")

	name := script
	if name == "" {
		name = "unilang"
	}

	args, _ = opts["ARGUMENTS"].([]string)
	args = append([]string{name}, args...)

	interactive = tty && script == "" && command == ""

	invertInteractive, _ := opts.Bool("--interactive")
	interactive = interactive != invertInteractive

	return nil
}
