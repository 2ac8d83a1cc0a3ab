package main

import "github.com/inovacc/upstream/cmd"

func main() {
	cmd.Execute()
}
