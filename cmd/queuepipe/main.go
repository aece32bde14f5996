package main

import "github.com/huynhanx03/go-queue/internal/cmd"

func main() {
	cmd.Execute()
}
