package main

import "github.com/pipeline-tools/diffscope/cmd"

func main() {
	cmd.Run()
}
