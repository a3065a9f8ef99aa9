package main

import "github.com/dirprobe/dirprobe/cmd"

func main() {
	cmd.Execute()
}
