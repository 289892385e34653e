package main

import "github.com/rsivaseshu/ghec-to-githubcloud/internal/cmd"

func main() {
	cmd.Execute()
}
