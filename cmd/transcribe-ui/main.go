package main

import (
	"transcribe-ui/cmd/transcribe-ui/cmd"
)

func main() {
	cmd.Execute()
}
