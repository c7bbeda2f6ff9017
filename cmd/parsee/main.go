package main

import "github.com/Kryft-Studios/parsee/internal/cli"

func main() {
	cli.Execute()
}
