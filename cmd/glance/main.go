package main

import (
	"github.com/photon-labs/glance/internal/adapters/driving/cli"
)

func main() {
	cli.Execute()
}
