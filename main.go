package main

import (
	"github.com/scorefall/scorefall-ink/cmd"
)

func main() {
	cmd.Execute()
}
