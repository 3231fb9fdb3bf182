package main

import "dummy-ticket/cmd"

func main() {
	cmd.Execute()
}
