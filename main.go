package main

import (
	"musicmanager/cmd"
)

func main() {
	cmd.Execute()
}
