package main

import "github.com/piqueme/gif-capture/cmd"

func main() {
	cmd.Execute()
}
