package main

import "github.com/mateconpizza/bark/cmd"

func main() {
	cmd.Execute()
}
