package main

import "github.com/mlahtinen/shelfmark/cmd"

var execute = cmd.Execute

func main() {
	execute()
}
