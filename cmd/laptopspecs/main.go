package main

import "github.com/joseph-ayodele/laptop-specs/internal/cli"

func main() {
	cli.Execute()
}
