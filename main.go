package main

import "github/chapool/go-gasless/cmd"

func main() {
	cmd.Execute()
}
