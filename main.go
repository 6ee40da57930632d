package main

import "github.com/papapumpkin/justify/cmd"

func main() {
	cmd.Execute()
}
