package main

import (
	"context"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/pthm/tonelint/internal/cmd"
)

func main() {
	err := fang.Execute(context.Background(), cmd.RootCmd)
	if err != nil {
		os.Exit(1)
	}
}
