package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		processGlobalFlags()
		switch strings.ToLower(viper.GetString("output")) {
		case "", "text":
			fmt.Printf("stackstep %s (commit %s, built %s)\n", version, commit, date)
		case "json":
			out, err := getOutputJSON(map[string]string{
				"version": version,
				"commit":  commit,
				"date":    date,
			})
			if err != nil {
				fatal(err)
			}
			fmt.Println(string(out))
		default:
			fatal(fmt.Sprintf("unknown output format: %s", viper.GetString("output")))
		}
	},
}
