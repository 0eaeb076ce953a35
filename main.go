package main

import (
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"strings"

	"github.com/alecthomas/repr"
	"github.com/coreos/pkg/capnslog"
	"github.com/urfave/cli/v2"
	"github.com/ztrue/tracerr"

	"github.com/pontaoski/minicc/config"
	"github.com/pontaoski/minicc/lexer"
	"github.com/pontaoski/minicc/pipeline"
)

var plog = capnslog.NewPackageLogger("github.com/pontaoski/minicc", "main")

// readInput reads the file named by the first argument, or stdin for "-".
func readInput(c *cli.Context) (string, error) {
	name := c.Args().First()
	if name == "" {
		return "", tracerr.New("no input file provided")
	}

	var (
		data []byte
		err  error
	)
	if name == "-" {
		data, err = ioutil.ReadAll(os.Stdin)
	} else {
		data, err = ioutil.ReadFile(name)
	}
	if err != nil {
		return "", tracerr.Wrap(err)
	}

	plog.Debugf("read %s: %d bytes", name, len(data))
	return string(data), nil
}

func newApp(stdout, stderr io.Writer) *cli.App {
	var (
		cfgPath string
		comp    *pipeline.Compiler
	)

	irFlag := &cli.BoolFlag{
		Name:  "ir",
		Usage: "treat the input as IR text instead of source",
	}

	return &cli.App{
		Name:      "minicc",
		Usage:     "tiny C compiler pipeline",
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Value: config.FileName,
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "CRITICAL, ERROR, WARNING, NOTICE, INFO, DEBUG or TRACE",
			},
		},
		Before: func(c *cli.Context) error {
			cfgPath = c.String("config")

			cfg, err := config.Load(cfgPath)
			if err != nil {
				return err
			}
			if lvl := c.String("log-level"); lvl != "" {
				cfg.LogLevel = lvl
			}

			level, err := cfg.Level()
			if err != nil {
				return err
			}
			capnslog.SetFormatter(capnslog.NewPrettyFormatter(stderr, level >= capnslog.DEBUG))
			capnslog.SetGlobalLogLevel(level)

			comp = pipeline.New(cfg)
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:  "init",
				Usage: "write a default project file",
				Action: func(c *cli.Context) error {
					if err := config.Write(cfgPath, config.Default()); err != nil {
						return err
					}
					fmt.Fprintf(stdout, "wrote %s\n", cfgPath)
					return nil
				},
			},
			{
				Name:      "tokens",
				Usage:     "list the tokens of a source file",
				ArgsUsage: "FILE",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "dump"},
				},
				Action: func(c *cli.Context) error {
					src, err := readInput(c)
					if err != nil {
						return err
					}

					if c.Bool("dump") {
						fmt.Fprintln(stdout, repr.String(lexer.Scan(src), repr.Indent("  ")))
						return nil
					}
					fmt.Fprint(stdout, comp.Scan(src))
					return nil
				},
			},
			{
				Name:      "ast",
				Usage:     "print the syntax tree and diagnostics",
				ArgsUsage: "FILE",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "dump"},
					&cli.BoolFlag{
						Name:  "env",
						Usage: "print the reference interpreter's variables",
					},
				},
				Action: func(c *cli.Context) error {
					src, err := readInput(c)
					if err != nil {
						return err
					}

					a := comp.Analyze(src)
					if c.Bool("dump") {
						fmt.Fprintln(stdout, repr.String(a.Root, repr.Indent("  ")))
					} else {
						fmt.Fprint(stdout, pipeline.Report(a))
					}

					if c.Bool("env") && a.Env != nil {
						for _, name := range a.Env.Names() {
							fmt.Fprintf(stdout, "%s = %d\n", name, a.Env[name])
						}
					}
					return nil
				},
			},
			{
				Name:      "ir",
				Usage:     "lower a source file to IR",
				ArgsUsage: "FILE",
				Action: func(c *cli.Context) error {
					src, err := readInput(c)
					if err != nil {
						return err
					}

					fmt.Fprint(stdout, comp.IR(src))
					return nil
				},
			},
			{
				Name:      "optimize",
				Usage:     "fold constants in the IR of a source file",
				ArgsUsage: "FILE",
				Flags:     []cli.Flag{irFlag},
				Action: func(c *cli.Context) error {
					in, err := readInput(c)
					if err != nil {
						return err
					}

					if !c.Bool("ir") {
						in = comp.IR(in)
					}
					fmt.Fprint(stdout, pipeline.Optimize(in))
					return nil
				},
			},
			{
				Name:      "run",
				Usage:     "compile, optimize and extract the execution result",
				ArgsUsage: "FILE",
				Flags:     []cli.Flag{irFlag},
				Action: func(c *cli.Context) error {
					in, err := readInput(c)
					if err != nil {
						return err
					}

					if !c.Bool("ir") {
						in = comp.IR(in)
					}
					fmt.Fprintln(stdout, pipeline.Execute(pipeline.Optimize(in)))
					return nil
				},
			},
			{
				Name:      "all",
				Usage:     "print the output of every stage",
				ArgsUsage: "FILE",
				Action: func(c *cli.Context) error {
					src, err := readInput(c)
					if err != nil {
						return err
					}

					r := comp.Run(src)
					for _, stage := range []struct {
						title string
						text  string
					}{
						{"Tokens", r.Tokens},
						{"AST", r.AST},
						{"IR", r.IR},
						{"Optimized IR", r.OptimizedIR},
						{"Execution", r.Execution + "\n"},
					} {
						fmt.Fprintf(stdout, "== %s ==\n%s", stage.title, stage.text)
						if !strings.HasSuffix(stage.text, "\n") {
							fmt.Fprintln(stdout)
						}
					}
					return nil
				},
			},
		},
	}
}

func main() {
	if err := newApp(os.Stdout, os.Stderr).Run(os.Args); err != nil {
		tracerr.PrintSourceColor(err)
		os.Exit(1)
	}
}
