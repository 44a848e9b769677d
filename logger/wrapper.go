package logger

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime/debug"
	"strings"

	"github.com/rs/zerolog"
)

// WrapProcess runs executable as a child process and relays its stderr.
// JSON lines are passed through to stdout; anything from a line starting
// with "panic" onwards is gathered into a single fatal record when the
// child exits. WrapProcess exits with the child's exit code.
func WrapProcess(executable string, arg ...string) {
	wrapLogger := NewLogger("Logs wrapper")
	defer handlePanic(wrapLogger)

	r, w, err := os.Pipe()
	if err != nil {
		wrapLogger.Fatal().Err(err).Msg("Could not create pipe for logs")
		os.Exit(1)
	}

	cmd := exec.Command(executable, arg...)
	cmd.Stderr = w
	cmd.Stdout = os.Stdout

	if err = cmd.Start(); err != nil {
		wrapLogger.Fatal().Err(err).Msg("Could not launch main process")
		os.Exit(1)
	}

	exitCodeCh := make(chan int)
	logsCh := make(chan []byte)
	go waitForCommandToExit(cmd, wrapLogger, exitCodeCh)
	go collectLogs(r, wrapLogger, logsCh)

	relay := newLogRelay(os.Stdout, wrapLogger)
	for {
		select {
		case exitCode := <-exitCodeCh:
			relay.exit(exitCode)
			os.Exit(exitCode)
		case line := <-logsCh:
			relay.handleLine(line)
		}
	}
}

// logRelay decides what happens to each line the child writes.
type logRelay struct {
	out        io.Writer
	log        zerolog.Logger
	foundPanic bool
	panicLogs  strings.Builder
}

func newLogRelay(out io.Writer, log zerolog.Logger) *logRelay {
	return &logRelay{out: out, log: log}
}

func (relay *logRelay) handleLine(line []byte) {
	text := string(line)
	if !relay.foundPanic && strings.HasPrefix(text, "panic") {
		relay.foundPanic = true
	}
	switch {
	case len(line) == 0:
	case relay.foundPanic:
		relay.panicLogs.WriteString(text)
		relay.panicLogs.WriteByte('\n')
	case isJSON(line):
		_, _ = fmt.Fprintln(relay.out, text)
	default:
		relay.log.Error().Msgf("Got log line that is not JSON formatted: '%s'", text)
	}
}

func (relay *logRelay) exit(exitCode int) {
	if exitCode == 0 {
		relay.log.Info().Msg("Exited with code 0")
		return
	}
	relay.log.WithLevel(zerolog.FatalLevel).
		Err(errors.New(relay.panicLogs.String())).
		Msgf("Panicked and exited with code: %d", exitCode)
}

func waitForCommandToExit(cmd *exec.Cmd, wrapLogger zerolog.Logger, exitCodeCh chan<- int) {
	defer handlePanic(wrapLogger)
	err := cmd.Wait()
	if err == nil {
		exitCodeCh <- 0
		return
	}
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		exitCodeCh <- 1
		return
	}
	exitCodeCh <- exitErr.ExitCode()
}

func collectLogs(r io.Reader, wrapLogger zerolog.Logger, logsCh chan<- []byte) {
	defer handlePanic(wrapLogger)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := make([]byte, len(scanner.Bytes()))
		copy(line, scanner.Bytes())
		logsCh <- line
	}
	if err := scanner.Err(); err != nil {
		wrapLogger.Fatal().Err(err).Msg("Error scanning piped main process's Stderr")
		os.Exit(1)
	}
}

func handlePanic(wrapLogger zerolog.Logger) {
	r := recover()
	if r == nil {
		return
	}
	wrapLogger.Fatal().
		Caller().
		Str("error", fmt.Sprint(r)).
		Str("stack_trace", string(debug.Stack())).
		Msg("Program panicked and exited")
}

func isJSON(b []byte) bool {
	var js json.RawMessage
	err := json.Unmarshal(b, &js)
	return err == nil && js != nil
}
