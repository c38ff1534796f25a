package main

import "github.com/luthersystems/tinylisp/cmd"

func main() {
	cmd.Execute()
}
