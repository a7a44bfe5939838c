package main

import "vision-hud/internal/cli"

func main() {
	cli.Execute()
}
