package main

import "github.com/taskweave/go-taskweave/cmd"

func main() {
	cmd.Execute()
}
