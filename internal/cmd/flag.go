// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"flag"
	"fmt"
	"io"
	"runtime/debug"

	"github.com/aibor/smalifs/internal/config"
)

const (
	name = "smalifs"

	usageMessage = `Usage of 'smalifs':
    smalifs [flags...] command input.dex [args...]

Commands:
    probe               exit with 1 if the input is not a DEX file
    ls [path]           list all files below path with their sizes
    cat path            write the content of a file to stdout
    export file.cpio    write all files into a new CPIO archive
    mount dir           mount read-only via FUSE until interrupted

The input is disassembled with baksmali by default. All flags can also be set
in a YAML or JSON file given with -config. Flags take precedence.
`
)

const (
	cmdProbe  = "probe"
	cmdList   = "ls"
	cmdCat    = "cat"
	cmdExport = "export"
	cmdMount  = "mount"
)

// Number of arguments after the input, as [min, max].
var commandArgs = map[string][2]int{
	cmdProbe:  {0, 0},
	cmdList:   {0, 1},
	cmdCat:    {1, 1},
	cmdExport: {1, 1},
	cmdMount:  {1, 1},
}

type flags struct {
	override   config.Override
	configFile string
	version    bool

	command string
	input   string
	args    []string

	flagSet *flag.FlagSet
}

func newFlags(output io.Writer) *flags {
	flags := &flags{}
	flags.initFlagset(output)

	return flags
}

func (f *flags) ParseArgs(args []string) error {
	// Parses arguments up to the first one that is not prefixed with a "-" or
	// is "--".
	err := f.flagSet.Parse(args)
	if err != nil {
		return &ParseArgsError{msg: "flag parse", err: err}
	}

	// With version flag, just print the version and exit. Using [ErrHelp]
	// the main binary is supposed to return with a non error exit code.
	if f.version {
		err := f.printVersionInformation()
		return &ParseArgsError{msg: "version requested", err: err}
	}

	positionalArgs := f.flagSet.Args()

	if len(positionalArgs) < 1 {
		return f.fail("no command given", nil)
	}

	f.command = positionalArgs[0]

	argRange, known := commandArgs[f.command]
	if !known {
		return f.fail(f.command, ErrUnknownCommand)
	}

	if len(positionalArgs) < 2 { //nolint:mnd
		return f.fail("no input file given", nil)
	}

	input, err := AbsoluteFilePath(positionalArgs[1])
	if err != nil {
		return f.fail("input path", err)
	}

	err = ValidateFilePath(input)
	if err != nil {
		return f.fail("input file", err)
	}

	f.input = input
	f.args = positionalArgs[2:]

	if len(f.args) < argRange[0] || len(f.args) > argRange[1] {
		return f.fail(
			fmt.Sprintf("%s takes %d to %d arguments, got %d",
				f.command, argRange[0], argRange[1], len(f.args)),
			nil,
		)
	}

	return nil
}

// config returns the effective configuration. The config file is applied
// first, the flags second.
func (f *flags) config() (config.Config, error) {
	cfg := config.Default()

	if f.configFile != "" {
		override, err := config.LoadOverrideFile(f.configFile)
		if err != nil {
			return config.Config{}, err //nolint:wrapcheck
		}

		cfg.Merge(override)
	}

	cfg.Merge(f.override)

	err := cfg.Validate()
	if err != nil {
		return config.Config{}, err //nolint:wrapcheck
	}

	return cfg, nil
}

func (f *flags) initFlagset(output io.Writer) {
	flagSet := flag.NewFlagSet(name, flag.ContinueOnError)
	flagSet.SetOutput(output)
	flagSet.Usage = f.usage

	flagSet.StringVar(
		&f.configFile,
		"config",
		f.configFile,
		"YAML or JSON config file",
	)

	flagSet.Var(
		stringOverride(&f.override.Converter.Executable),
		"converter",
		"converter executable (default \"baksmali\")",
	)

	flagSet.Var(
		durationOverride(&f.override.Converter.Timeout),
		"timeout",
		"converter timeout, 0 disables it (default 0s)",
	)

	flagSet.Var(
		stringOverride(&f.override.TempDir),
		"tmpdir",
		"directory for temporary files (default is the system temp dir)",
	)

	flagSet.Var(
		limitOverride(&f.override.MaxInputBytes),
		"max-input",
		"maximum size in bytes of an input that must be copied, -1 disables "+
			"the limit",
	)

	flagSet.Var(
		boolOverride(&f.override.Strict),
		"strict",
		"fail if two converter outputs map to the same path",
	)

	flagSet.Var(
		stringOverride(&f.override.MetricsAddr),
		"metrics-addr",
		"serve prometheus metrics on this address while mounted",
	)

	flagSet.Var(
		boolOverride(&f.override.Debug),
		"debug",
		"enable debug output",
	)

	flagSet.BoolVar(
		&f.version,
		"version",
		f.version,
		"show version and exit",
	)

	f.flagSet = flagSet
}

// fail fails like flag does. It prints the error first and then usage.
func (f *flags) fail(msg string, err error) error {
	err = &ParseArgsError{msg: msg, err: err}
	fmt.Fprintln(f.flagSet.Output(), err.Error())

	f.flagSet.Usage()

	return err
}

func (f *flags) printVersionInformation() error {
	buildInfo, ok := debug.ReadBuildInfo()
	if !ok {
		return ErrReadBuildInfo
	}

	fmt.Fprintf(f.flagSet.Output(), "Version: %s\n", buildInfo.Main.Version)

	return ErrHelp
}

func (f *flags) usage() {
	fmt.Fprint(f.flagSet.Output(), usageMessage)
	fmt.Fprintln(f.flagSet.Output(), "\nFlags:")
	f.flagSet.PrintDefaults()
}
