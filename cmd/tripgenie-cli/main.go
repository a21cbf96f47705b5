package main

import "tripgenie/cmd/tripgenie-cli/cmd"

func main() {
	cmd.Execute()
}
