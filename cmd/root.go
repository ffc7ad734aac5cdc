// Package cmd provides the root command and CLI setup for drill.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"gooze.dev/pkg/drill/internal/controller"
)

var ui controller.UI

// notebookFlag names the notebook file the cells belong to; the module name
// falls back to it when no explicit module token is given.
var notebookFlag string

func init() {
	ui = controller.NewUI(rootCmd, controller.IsTTY(os.Stdout))
}

const rootLongDescription = `Drill checks interactive Go exercise solutions against hidden test modules.

A cell defines one or more functions named solution<Exercise> (for example
solutionAdd). Drill extracts them, runs the matching tests from the exercise
test module, tracks attempts per cell and function, and reveals the reference
solution once the tests pass or enough attempts failed.`

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "drill",
		Short: "Interactive Go exercise checker",
		Long:  rootLongDescription,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	configureRootFlags(cmd)

	return cmd
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVarP(
		&notebookFlag, notebookFlagName, "n",
		viper.GetString(notebookConfigKey),
		"notebook file the cells belong to (module name fallback)",
	)
	bindFlagToConfig(cmd.PersistentFlags().Lookup(notebookFlagName), notebookConfigKey)
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
