package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/gofrs/uuid"
	"github.com/hashicorp/go-multierror"
	"github.com/hokaccha/go-prettyjson"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/stackstep-io/stackstep/errz"
)

var red = color.New(color.FgRed).SprintFunc()

// processGlobalFlags reads global flags from Viper and adjusts the
// environment accordingly.
func processGlobalFlags() {
	if viper.GetBool("no-color") {
		color.NoColor = true
	}
}

func fatal(msg interface{}) {
	var s string
	switch msg := msg.(type) {
	case string:
		s = msg
	case error:
		s = msg.Error()
	default:
		s = fmt.Sprintf("%v", msg)
	}
	fmt.Fprintf(os.Stderr, "%s\n", red(s))
	os.Exit(1)
}

func isTerminalIO() bool {
	stdout := os.Stdout.Fd()
	return isatty.IsTerminal(stdout) || isatty.IsCygwinTerminal(stdout)
}

func useColor() bool {
	return !viper.GetBool("no-color") && isTerminalIO()
}

// getSourceCode resolves the source to compile. There are three
// possibilities:
//  1. --code <code>
//  2. --stdin (read code from stdin)
//  3. path as args[0]
func getSourceCode(cmd *cobra.Command, args []string) (code, filename string, err error) {
	if cmd.Flags().Lookup("code").Changed {
		return viper.GetString("code"), "", nil
	}
	if viper.GetBool("stdin") {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", "", err
		}
		return string(data), "", nil
	}
	if len(args) == 0 {
		return "", "", errors.New("no code supplied (expected a file path, --code or --stdin)")
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", "", err
	}
	return string(data), args[0], nil
}

func getOutputJSON(result interface{}) ([]byte, error) {
	if viper.GetBool("no-color") {
		return json.MarshalIndent(result, "", "  ")
	}
	return prettyjson.Marshal(result)
}

// friendlyError renders parse errors with their source snippets. Other
// errors pass through unchanged.
func friendlyError(err error) string {
	var merr *multierror.Error
	if !errors.As(err, &merr) {
		var serr *errz.SyntaxError
		if errors.As(err, &serr) {
			return serr.FriendlyMessage()
		}
		return err.Error()
	}
	var out []string
	for _, e := range merr.Errors {
		var serr *errz.SyntaxError
		if errors.As(e, &serr) {
			out = append(out, serr.FriendlyMessage())
		} else {
			out = append(out, e.Error())
		}
	}
	return strings.Join(out, "\n")
}

// newLogger returns a logger that is silent unless --verbose is set. Each
// invocation gets a session id so interleaved runs can be told apart.
func newLogger() zerolog.Logger {
	if !viper.GetBool("verbose") {
		return zerolog.Nop()
	}
	session := uuid.Must(uuid.NewV4()).String()
	writer := zerolog.ConsoleWriter{Out: os.Stderr, NoColor: viper.GetBool("no-color")}
	return zerolog.New(writer).With().Timestamp().Str("session", session).Logger()
}
