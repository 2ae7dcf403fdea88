/*****************************************************************************************************************/

//	@package	artrack

/*****************************************************************************************************************/

package cli

/*****************************************************************************************************************/

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quietloom/artrack/internal/recorder"
	"github.com/quietloom/artrack/pkg/registry"
)

/*****************************************************************************************************************/

var inspectDatabase string
var inspectInstanceID int

/*****************************************************************************************************************/

var inspectCommand = &cobra.Command{
	Use:   "inspect",
	Short: "inspect a recorded session's status history",
	Long:  "inspect opens a SQLite database written by internal/recorder during a previous session and prints the status history recorded for one augmentation instance id.",
	Run: func(cmd *cobra.Command, args []string) {
		if err := runInspect(inspectDatabase, inspectInstanceID); err != nil {
			fmt.Println("Error:", err)
			cmd.Usage()
		}
	},
}

/*****************************************************************************************************************/

func init() {
	inspectCommand.Flags().StringVarP(&inspectDatabase, "database", "d", "artrack.sqlite", "path to the recorder's SQLite database")
	inspectCommand.Flags().IntVarP(&inspectInstanceID, "id", "i", 0, "the augmentation instance id to inspect")
	inspectCommand.MarkFlagRequired("database")
}

/*****************************************************************************************************************/

func runInspect(path string, id int) error {
	rec, err := recorder.Open(path)
	if err != nil {
		return err
	}
	defer rec.Close()

	history, err := rec.History(registry.ID(id))
	if err != nil {
		return err
	}

	for _, entry := range history {
		fmt.Printf("%s instance=%d status=%d\n", entry.ObservedAt.Format("15:04:05.000"), entry.InstanceID, entry.Status)
	}
	fmt.Printf("%d records\n", len(history))

	return nil
}

/*****************************************************************************************************************/
