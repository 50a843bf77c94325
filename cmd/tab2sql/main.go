// Command tab2sql converts tab-delimited text into a PostgreSQL script.
//
// Usage:
//
//	tab2sql [flags] [file ...]
//
// With no files, or with "-", standard input is read. Each file becomes one
// table named after the file unless -table is given. Scripts go to stdout,
// or to <table>.sql files under -out. With -load the tables are created in
// DATABASE_URL instead.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"
	"time"
	"unicode"

	"github.com/JonMunkholm/tab2sql/internal/config"
	"github.com/JonMunkholm/tab2sql/internal/core"
	"github.com/JonMunkholm/tab2sql/internal/database"
	"github.com/JonMunkholm/tab2sql/internal/logging"
	"github.com/fatih/color"
	"golang.org/x/sync/errgroup"
)

func main() {
	if _, err := config.LoadDotEnv(); err != nil {
		printError(os.Stderr, err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.LookupEnv, os.Stdin, os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			printError(os.Stderr, err)
		}
		stop()
		os.Exit(1)
	}
}

// printError writes err in red, followed by the suggested action when the
// error is one users can act on.
func printError(w io.Writer, err error) {
	color.New(color.FgRed, color.Bold).Fprintf(w, "Error: %v\n", err)
	if core.IsUserFacing(err) {
		msg := core.MapError(err)
		color.New(color.FgYellow).Fprintf(w, "  %s (%s)\n", msg.Action, msg.Code)
	}
}

type options struct {
	headers     bool
	null        bool
	emptyString bool
	table       string
	out         string
	json        bool
	load        bool
	copy        bool
	logLevel    string
}

// input is one file (or stdin) and the table it becomes.
type input struct {
	name  string
	table string
	open  func() (io.ReadCloser, error)
}

func run(ctx context.Context, args []string, lookup config.LookupFunc, stdin io.Reader, stdout, stderr io.Writer) error {
	cfg, err := config.LoadFrom(lookup)
	if err != nil {
		return err
	}

	opts, files, err := parseFlags(args, cfg, stderr)
	if err != nil {
		return err
	}

	logging.Setup(stderr, opts.logLevel, cfg.Logging.Format)

	inputs, err := resolveInputs(files, opts.table, cfg.Parse.TableName, stdin)
	if err != nil {
		return err
	}

	var db core.TxBeginner
	if opts.load {
		if !cfg.Database.Enabled() {
			return core.ErrNoDatabase
		}
		pool, err := database.Open(ctx, cfg.Database)
		if err != nil {
			return err
		}
		defer pool.Close()
		db = pool
	}

	svc := core.NewService(db, cfg)
	outputs := make([][]byte, len(inputs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, in := range inputs {
		i, in := i, in
		g.Go(func() error {
			out, err := convert(gctx, svc, in, opts)
			if err != nil {
				return fmt.Errorf("%s: %w", in.name, err)
			}
			outputs[i] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	return writeOutputs(inputs, outputs, opts, stdout)
}

func parseFlags(args []string, cfg *config.Config, stderr io.Writer) (options, []string, error) {
	var opts options

	fs := flag.NewFlagSet("tab2sql", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "Usage: tab2sql [flags] [file ...]")
		fs.PrintDefaults()
	}

	fs.BoolVar(&opts.headers, "headers", cfg.Parse.FirstLineHeaders, "take column names from the first line")
	fs.BoolVar(&opts.null, "null", cfg.Parse.ConvertNullSentinel, "convert NULL cells (any case) to null")
	fs.BoolVar(&opts.emptyString, "emptystring", cfg.Parse.ConvertEmptyStringSentinel, "convert EMPTYSTRING cells (any case) to empty text")
	fs.StringVar(&opts.table, "table", "", "table name (single input only; default: file name or "+cfg.Parse.TableName+")")
	fs.StringVar(&opts.out, "out", "", "write <table>.sql files to this directory instead of stdout")
	fs.BoolVar(&opts.json, "json", false, "print the parse result as JSON instead of SQL")
	fs.BoolVar(&opts.load, "load", false, "create the tables in DATABASE_URL")
	fs.BoolVar(&opts.copy, "copy", cfg.Load.UseCopy, "with -load, send rows using COPY")
	fs.StringVar(&opts.logLevel, "log-level", cfg.Logging.Level, "log level: debug, info, warn, error")

	if err := fs.Parse(args); err != nil {
		return opts, nil, err
	}
	if opts.json && opts.load {
		return opts, nil, errors.New("-json and -load cannot be combined")
	}
	return opts, fs.Args(), nil
}

func resolveInputs(files []string, table, defaultTable string, stdin io.Reader) ([]input, error) {
	if len(files) == 0 {
		files = []string{"-"}
	}
	if table != "" && len(files) > 1 {
		return nil, errors.New("-table needs exactly one input")
	}

	inputs := make([]input, len(files))
	seen := make(map[string]string, len(files))
	for i, file := range files {
		in := input{name: file, table: table}

		if file == "-" {
			in.name = "stdin"
			in.open = func() (io.ReadCloser, error) { return io.NopCloser(stdin), nil }
			if in.table == "" {
				in.table = defaultTable
			}
		} else {
			path := file
			in.open = func() (io.ReadCloser, error) { return os.Open(path) }
			if in.table == "" {
				in.table = tableName(path)
			}
		}

		if prev, ok := seen[in.table]; ok {
			return nil, fmt.Errorf("%s and %s both map to table %s", prev, in.name, in.table)
		}
		seen[in.table] = in.name
		inputs[i] = in
	}
	return inputs, nil
}

// tableName derives an unquoted identifier from a file name: the base name
// without extension, with anything but letters, digits and underscores
// replaced by underscores.
func tableName(path string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))

	name := strings.Map(func(r rune) rune {
		if r == '_' || r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			return r
		}
		return '_'
	}, base)

	if name == "" || unicode.IsDigit(rune(name[0])) {
		name = "t_" + name
	}
	return name
}

func convert(ctx context.Context, svc *core.Service, in input, opts options) ([]byte, error) {
	r, err := in.open()
	if err != nil {
		return nil, err
	}
	defer r.Close()

	req := core.Request{
		Parse: core.ParseConfig{
			FirstLineHeaders:           opts.headers,
			ConvertNullSentinel:        opts.null,
			ConvertEmptyStringSentinel: opts.emptyString,
		},
		Table: in.table,
	}

	switch {
	case opts.load:
		res, err := svc.Load(ctx, r, req, opts.copy)
		if err != nil {
			return nil, err
		}
		return fmt.Appendf(nil, "%s: loaded %d rows into %s (%s, %s)\n",
			in.name, res.Rows, res.Table, res.Method, res.Duration.Round(time.Millisecond)), nil

	case opts.json:
		result, err := svc.Parse(ctx, r, req)
		if err != nil {
			return nil, err
		}
		return marshalResult(result)

	default:
		_, script, err := svc.Convert(ctx, r, req)
		if err != nil {
			return nil, err
		}
		return []byte(script), nil
	}
}

func writeOutputs(inputs []input, outputs [][]byte, opts options, stdout io.Writer) error {
	if opts.out != "" && !opts.load {
		if err := os.MkdirAll(opts.out, 0o755); err != nil {
			return err
		}
		ext := ".sql"
		if opts.json {
			ext = ".json"
		}
		for i, in := range inputs {
			path := filepath.Join(opts.out, in.table+ext)
			if err := os.WriteFile(path, outputs[i], 0o644); err != nil {
				return err
			}
			fmt.Fprintf(stdout, "%s -> %s\n", in.name, path)
		}
		return nil
	}

	for i, out := range outputs {
		if i > 0 && !opts.load {
			io.WriteString(stdout, "\n")
		}
		if _, err := stdout.Write(out); err != nil {
			return err
		}
	}
	return nil
}

func marshalResult(result *core.ParseResult) ([]byte, error) {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
