package main

import "github.com/sadopc/taskflow/cmd"

func main() {
	cmd.Execute()
}
