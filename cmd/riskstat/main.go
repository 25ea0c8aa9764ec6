package main

import (
	"github.com/c9s/riskstat/pkg/cmd"
)

func main() {
	cmd.Execute()
}
