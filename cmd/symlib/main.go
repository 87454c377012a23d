// symlib inspects and edits KiCad symbol libraries from the command line.
package main

import "github.com/OpenTraceLab/kicad-symlib/cmd/symlib/cmd"

func main() {
	cmd.Execute()
}
