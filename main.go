package main

import (
	"erd-builder/cmd"
)

func main() {
	cmd.Execute()
}
