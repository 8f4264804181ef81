package main

import "github.com/leaktk/precommit/cmd"

func main() {
	cmd.Execute()
}
