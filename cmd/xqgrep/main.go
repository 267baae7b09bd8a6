// Command xqgrep prints the lines of its input that match an XPath regular
// expression, using the semantics of fn:matches.
//
//	xqgrep [-flags=smixq] [-v] [-c] [-n] pattern [file ...]
//
// The exit status is 0 if a line was selected, 1 if none was and 2 if an
// error occurred.
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/BaseXdb/xqregex"
)

const (
	exitMatch   = 0
	exitNoMatch = 1
	exitError   = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

type options struct {
	flags         string
	invert        bool
	count         bool
	lineNumbers   bool
	maxBacktracks int
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	logger := log.New(stderr, "xqgrep: ", 0)

	fs := flag.NewFlagSet("xqgrep", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "usage: xqgrep [-flags=smixq] [-v] [-c] [-n] pattern [file ...]")
		fs.PrintDefaults()
	}

	var opts options
	fs.StringVar(&opts.flags, "flags", "", "fn:matches flags (s, m, i, x, q)")
	fs.BoolVar(&opts.invert, "v", false, "select non-matching lines")
	fs.BoolVar(&opts.count, "c", false, "print only a count of selected lines")
	fs.BoolVar(&opts.lineNumbers, "n", false, "prefix each line with its line number")
	fs.IntVar(&opts.maxBacktracks, "max-backtracks", xqregex.DefaultConfig().MaxBacktracks, "backtracking limit per start position, 0 for none")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitMatch
		}
		return exitError
	}
	if fs.NArg() < 1 {
		fs.Usage()
		return exitError
	}

	re, err := compile(fs.Arg(0), opts)
	if err != nil {
		logger.Print(err)
		return exitError
	}

	g := &grep{re: re, opts: opts, out: bufio.NewWriter(stdout)}
	defer g.out.Flush()

	files := fs.Args()[1:]
	if len(files) == 0 {
		if err := g.scan("", stdin); err != nil {
			logger.Print(err)
			return exitError
		}
	}
	g.prefix = len(files) > 1

	status := exitNoMatch
	for _, name := range files {
		if err := g.scanFile(name); err != nil {
			logger.Print(err)
			status = exitError
		}
	}
	if status == exitError {
		return exitError
	}
	if g.selected > 0 {
		return exitMatch
	}
	return exitNoMatch
}

func compile(pattern string, opts options) (*xqregex.Regexp, error) {
	flags, err := xqregex.ParseFlags(opts.flags)
	if err != nil {
		return nil, err
	}
	config := xqregex.DefaultConfig()
	config.MaxBacktracks = opts.maxBacktracks
	return xqregex.CompileWithConfig(pattern, flags, config)
}

type grep struct {
	re     *xqregex.Regexp
	opts   options
	out    *bufio.Writer
	prefix bool

	// Selected lines over all inputs
	selected int
}

func (g *grep) scanFile(name string) error {
	f, err := os.Open(name)
	if err != nil {
		return err
	}
	defer f.Close()
	return g.scan(name, f)
}

func (g *grep) scan(name string, r io.Reader) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	count := 0
	for lineNo := 1; scanner.Scan(); lineNo++ {
		line := scanner.Text()
		matched, err := g.re.Match(line)
		if err != nil {
			return fmt.Errorf("%s:%d: %w", displayName(name), lineNo, err)
		}
		if matched == g.opts.invert {
			continue
		}
		count++
		if g.opts.count {
			continue
		}
		if g.prefix {
			fmt.Fprintf(g.out, "%s:", name)
		}
		if g.opts.lineNumbers {
			fmt.Fprintf(g.out, "%d:", lineNo)
		}
		fmt.Fprintln(g.out, line)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading %s: %w", displayName(name), err)
	}

	g.selected += count
	if g.opts.count {
		if g.prefix {
			fmt.Fprintf(g.out, "%s:", name)
		}
		fmt.Fprintln(g.out, count)
	}
	return nil
}

func displayName(name string) string {
	if name == "" {
		return "(standard input)"
	}
	return name
}
