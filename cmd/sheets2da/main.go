package main

import (
	"github.com/dowe-nwn/sheets2da/commands"
)

func main() {
	commands.Execute()
}
