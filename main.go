package main

import "racelens/cmd"

func main() {
	cmd.Execute()
}
