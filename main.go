package main

import "subtrack/cmd"

func main() {
	cmd.Execute()
}
