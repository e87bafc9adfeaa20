package main

import "massnet.org/hashlookup/cmd/hashcli/cmd"

func main() {
	cmd.Execute()
}
