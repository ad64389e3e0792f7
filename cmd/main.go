package main

import (
	"os"

	"github.com/vietlaw/trafficqa/cmd/trafficqa"
)

func main() {
	if err := trafficqa.Execute(); err != nil {
		os.Exit(1)
	}
}
