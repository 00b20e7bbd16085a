package main

import "tabkit/cmd/tabkit/cmd"

func main() {
	cmd.Execute()
}
