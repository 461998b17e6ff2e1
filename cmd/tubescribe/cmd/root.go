package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"tubescribe/cmd/tubescribe/cmd/serve"
	"tubescribe/cmd/tubescribe/cmd/version"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "tubescribe",
	Short: "A service that turns YouTube links into retrievable transcript documents",
	Long: `tubescribe accepts a YouTube link, extracts its audio, submits the audio
to an asynchronous speech-to-text service and persists the finished
transcript as a document with full CRUD access over HTTP.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serve.Cmd)
	rootCmd.AddCommand(version.Cmd)
}
