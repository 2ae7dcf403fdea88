/*****************************************************************************************************************/

//	@package	artrack

/*****************************************************************************************************************/

package main

/*****************************************************************************************************************/

import (
	"github.com/quietloom/artrack/internal/cli"
)

/*****************************************************************************************************************/

func main() {
	cli.Execute()
}

/*****************************************************************************************************************/
