package main

import "adherence-sync/cmd"

func main() {
	cmd.Execute()
}
