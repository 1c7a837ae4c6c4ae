package main

import "github.com/mlyden/inputsource-cli/cmd"

func main() {
	cmd.Execute()
}
