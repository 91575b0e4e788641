package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/stackstep-io/stackstep/compiler"
	"github.com/stackstep-io/stackstep/parser"
)

// astStatement is the JSON shape for one parsed statement.
type astStatement struct {
	ID     string `json:"id"`
	Index  int    `json:"index"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
	Source string `json:"source"`
}

var astCmd = &cobra.Command{
	Use:   "ast [file]",
	Short: "Display the parsed statements for stackstep code",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		processGlobalFlags()
		source, filename, err := getSourceCode(cmd, args)
		if err != nil {
			fatal(err)
		}
		var parserOpts []parser.Option
		if filename != "" {
			parserOpts = append(parserOpts, parser.WithFilename(filename))
		}
		program, err := parser.Parse(cmd.Context(), source, parserOpts...)
		if err != nil {
			fatal(friendlyError(err))
		}
		blocks := compiler.Split(program)
		switch strings.ToLower(viper.GetString("output")) {
		case "", "text":
			for _, block := range blocks {
				fmt.Printf("%s  %s\n", block.ID, block.Node.String())
			}
		case "json":
			statements := make([]astStatement, 0, len(blocks))
			for _, block := range blocks {
				statements = append(statements, astStatement{
					ID:     block.ID,
					Index:  block.Index,
					Line:   block.Pos.LineNumber(),
					Column: block.Pos.ColumnNumber(),
					Source: block.Node.String(),
				})
			}
			out, err := getOutputJSON(statements)
			if err != nil {
				fatal(err)
			}
			fmt.Println(string(out))
		default:
			fatal(fmt.Sprintf("unknown output format: %s", viper.GetString("output")))
		}
	},
}
