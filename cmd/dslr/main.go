package main

import "github.com/YuminosukeSato/dslr/internal/cli"

func main() {
	cli.Execute()
}
