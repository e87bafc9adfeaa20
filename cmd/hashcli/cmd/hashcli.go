package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"massnet.org/hashlookup/logging"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:           filepath.Base(os.Args[0]),
	Short:         `Command line client for hashlookup`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() {
	// Use all processor cores.
	runtime.GOMAXPROCS(runtime.NumCPU())

	if err := RootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		logging.CPrint(logging.FATAL, "fail on RootCmd.Execute", logging.LogFormat{"err": err})
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	cobra.OnInitialize(initLogger)
	cobra.OnInitialize(logBasicInfo)

	RootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./.hashcli.json)")
	RootCmd.PersistentFlags().StringVar(&flagAPIURL, "api_url", defaultAPIURL, "API URL")
	RootCmd.PersistentFlags().StringVar(&flagLogDir, "log_dir", defaultLogDir, "directory for log files")
	RootCmd.PersistentFlags().StringVar(&flagLogLevel, "log_level", defaultLogLevel, "level of logs (debug, info, warn, error, fatal, panic)")

	viper.BindPFlag("api_url", RootCmd.PersistentFlags().Lookup("api_url"))
	viper.BindPFlag("log_dir", RootCmd.PersistentFlags().Lookup("log_dir"))
	viper.BindPFlag("log_level", RootCmd.PersistentFlags().Lookup("log_level"))

	RootCmd.AddCommand(sumCmd)
	RootCmd.AddCommand(hashCmd)

	decryptCmd.Flags().StringVarP(&flagLibrary, "library", "l", "", "search this word list locally instead of asking the API")
	decryptCmd.Flags().IntVarP(&flagWorkers, "workers", "w", runtime.NumCPU(), "number of workers for a local search")
	RootCmd.AddCommand(decryptCmd)

	RootCmd.AddCommand(versionCmd)
}
