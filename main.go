package main

import "github.com/npmd-dev/npmd/cmd"

func main() {
	cmd.Execute()
}
