package main

import (
	cmd "github.com/trapdoorsec/rinzler/internal/cli"
)

func main() {
	cmd.Execute()
}
