package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/stackstep-io/stackstep"
	"github.com/stackstep-io/stackstep/dis"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "stackstep [file]",
	Short: "Compile JavaScript into a narrated stack-machine listing",
	Long: `Stackstep compiles a subset of JavaScript into a flat list of
stack-machine instructions, each narrated in plain English. The listing
is for reading, not running: it shows what a stack machine would do,
grouped statement by statement.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		processGlobalFlags()
		log := newLogger()

		source, filename, err := getSourceCode(cmd, args)
		if err != nil {
			fatal(err)
		}
		log.Debug().Str("filename", filename).Int("bytes", len(source)).
			Msg("compiling source")

		program, err := stackstep.Compile(cmd.Context(), source,
			stackstep.WithFilename(filename))
		if err != nil {
			fatal(friendlyError(err))
		}
		log.Debug().Int("lines", len(program.Lines())).
			Int("diagnostics", len(program.Diagnostics())).
			Msg("compilation finished")

		switch strings.ToLower(viper.GetString("output")) {
		case "", "text":
			printer := dis.NewPrinter(dis.WithColor(useColor()))
			if err := printer.Print(os.Stdout, program.Blocks(), program.Result()); err != nil {
				fatal(err)
			}
		case "json":
			out, err := getOutputJSON(program.Result())
			if err != nil {
				fatal(err)
			}
			fmt.Println(string(out))
		default:
			fatal(fmt.Sprintf("unknown output format: %s", viper.GetString("output")))
		}
	},
}

func init() {
	pflags := rootCmd.PersistentFlags()
	pflags.StringP("code", "c", "", "Code to compile")
	pflags.Bool("stdin", false, "Read code from stdin")
	pflags.Bool("no-color", false, "Disable colored output")
	pflags.Bool("verbose", false, "Enable verbose logging")
	pflags.StringP("output", "o", "", "Output format (json or text)")
	if err := viper.BindPFlags(pflags); err != nil {
		fatal(err)
	}
	viper.SetEnvPrefix("stackstep")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	rootCmd.AddCommand(astCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fatal(err)
	}
}
