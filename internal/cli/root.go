/*****************************************************************************************************************/

//	@package	artrack

/*****************************************************************************************************************/

package cli

/*****************************************************************************************************************/

import (
	"github.com/spf13/cobra"
)

/*****************************************************************************************************************/

var rootCommand = &cobra.Command{
	Use:   "artrack",
	Short: "artrack is a command-line tool for driving a marker-less planar-surface AR tracker.",
	Long:  "artrack is a command-line tool for driving a marker-less planar-surface AR tracker against a synthetic or scripted frame source.",
}

/*****************************************************************************************************************/

func init() {
	rootCommand.AddCommand(runCommand)
	rootCommand.AddCommand(benchCommand)
	rootCommand.AddCommand(inspectCommand)
}

/*****************************************************************************************************************/

// Execute runs the root command; it panics on error, matching the source
// CLI's top-level error handling.
func Execute() {
	if err := rootCommand.Execute(); err != nil {
		panic(err)
	}
}

/*****************************************************************************************************************/
