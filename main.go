package main

import "github.com/Tiliavir/work-time-saver/cmd"

func main() {
	cmd.Execute()
}
