package main

import (
	"github.com/seifreed/NSECGenerator/cmd"
)

func main() {
	cmd.Execute()
}
