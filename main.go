package main

import "github.com/kyleGrealis/sumExtras/cmd"

func main() {
	cmd.Execute()
}
