package main

import "github.com/deploymenttheory/go-cfb/cmd"

func main() {
	cmd.Execute()
}
