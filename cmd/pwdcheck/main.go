// Pwdcheck checks passwords against a sorted hash list such as the Pwned
// Passwords SHA-1 list, without loading the list into memory.
//
// Usage:
//
//	pwdcheck [flags] <sorted hash list file>
//
// Passwords are read from the controlling terminal without echo, one per
// prompt, until an empty entry.
//
// Flags:
//
//	-algo         Digest the list was built with (default: sha1)
//	-i            Also try every upper/lowercase combination of each password
//	-max-letters  With -i, refuse passwords with more cased letters (default: 20, 0 = no limit)
//	-verify       Scan the whole list for sort order and format before prompting
//	-workers      Parallel workers for -verify (default: GOMAXPROCS)
//	-v            Debug logging
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"time"

	"golang.org/x/term"

	"github.com/tamirms/pwnedlist"
	pwerrors "github.com/tamirms/pwnedlist/errors"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)

	src, closeSrc := openSecretSource(os.Stderr)
	code := run(ctx, os.Args[1:], src, os.Stdout, os.Stderr)
	closeSrc()
	stop()
	os.Exit(code)
}

// secretSource yields one secret per call. io.EOF ends the session.
type secretSource interface {
	ReadSecret(prompt string) (string, error)
}

func run(ctx context.Context, args []string, src secretSource, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("pwdcheck", flag.ContinueOnError)
	fs.SetOutput(stderr)
	algoFlag := fs.String("algo", pwnedlist.SHA1.String(), "digest algorithm the list was built with")
	insensitiveFlag := fs.Bool("i", false, "try every upper/lowercase combination of each password")
	maxLettersFlag := fs.Int("max-letters", 20, "with -i, refuse passwords with more cased letters (0 = no limit)")
	verifyFlag := fs.Bool("verify", false, "check the whole list for sort order and format before prompting")
	workersFlag := fs.Int("workers", runtime.GOMAXPROCS(0), "parallel workers for -verify")
	verboseFlag := fs.Bool("v", false, "debug logging")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: %s [flags] <sorted hash list file>\n", fs.Name())
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return exitUsage
	}

	level := slog.LevelInfo
	if *verboseFlag {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	algo, err := pwnedlist.ParseAlgorithm(*algoFlag)
	if err != nil {
		logger.Error("invalid -algo", "err", err, "supported", pwnedlist.Algorithms())
		return exitUsage
	}

	path := fs.Arg(0)
	idx, err := pwnedlist.Open(path,
		pwnedlist.WithAlgorithm(algo),
		pwnedlist.WithMaxVariantLetters(*maxLettersFlag),
	)
	if err != nil {
		logger.Error("open hash list", "path", path, "err", err, "format", errors.Is(err, pwerrors.ErrFormat))
		return exitError
	}
	defer idx.Close()

	st := idx.Stats()
	logger.Debug("opened hash list",
		"path", path,
		"records", st.Records,
		"record_width", st.RecordWidth,
		"trailing_bytes", st.TrailingBytes,
		"algorithm", st.Algorithm,
		"uppercase", st.Uppercase,
	)
	if st.TrailingBytes > 0 {
		logger.Warn("hash list ends with a partial record; it is ignored", "bytes", st.TrailingBytes)
	}

	if *verifyFlag {
		start := time.Now()
		if err := idx.Verify(ctx, *workersFlag); err != nil {
			logger.Error("verify hash list", "path", path, "err", err)
			return exitError
		}
		logger.Info("hash list verified", "records", st.Records, "elapsed", time.Since(start))
	}

	return loop(ctx, idx, src, !*insensitiveFlag, stdout, logger)
}

// loop prompts for secrets until an empty entry or end of input.
func loop(ctx context.Context, idx *pwnedlist.Index, src secretSource, caseSensitive bool, stdout io.Writer, logger *slog.Logger) int {
	for {
		pwd, err := src.ReadSecret("Password: ")
		if errors.Is(err, io.EOF) {
			return exitOK
		}
		if err != nil {
			logger.Error("read password", "err", err)
			return exitError
		}
		if pwd == "" {
			return exitOK
		}

		found, err := idx.ProbeContext(ctx, pwd, caseSensitive)
		switch {
		case errors.Is(err, pwerrors.ErrPasswordTooLong):
			logger.Warn("password skipped", "err", err)
			continue
		case err != nil:
			logger.Error("probe", "err", err)
			return exitError
		}
		if found {
			fmt.Fprintln(stdout, "Found!")
		} else {
			fmt.Fprintln(stdout, "Not found!")
		}
	}
}

// openSecretSource prefers the controlling terminal so input is never
// echoed, falling back to line-oriented stdin when there is none.
func openSecretSource(prompts io.Writer) (secretSource, func()) {
	if tty, err := os.OpenFile("/dev/tty", os.O_RDWR, 0); err == nil {
		return &terminalSource{fd: int(tty.Fd()), prompts: tty}, func() { _ = tty.Close() }
	}
	if fd := int(os.Stdin.Fd()); term.IsTerminal(fd) {
		return &terminalSource{fd: fd, prompts: prompts}, func() {}
	}
	return &lineSource{r: bufio.NewReader(os.Stdin)}, func() {}
}

type terminalSource struct {
	fd      int
	prompts io.Writer
}

func (s *terminalSource) ReadSecret(prompt string) (string, error) {
	fmt.Fprint(s.prompts, prompt)
	b, err := term.ReadPassword(s.fd)
	fmt.Fprintln(s.prompts)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// lineSource reads one secret per line. Used when no terminal is available.
type lineSource struct {
	r *bufio.Reader
}

func (s *lineSource) ReadSecret(string) (string, error) {
	line, err := s.r.ReadString('\n')
	if err != nil && (line == "" || !errors.Is(err, io.EOF)) {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
