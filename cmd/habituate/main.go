package main

import "github.com/paulogil93/habitua-te-api/cmd/habituate/commands"

func main() {
	commands.Execute()
}
