package main

import "github.com/axiom-software-co/sitenav/internal/cli"

func main() {
	cli.Execute()
}
