package main

import "github.com/example/holidaze/cmd"

func main() {
	cmd.Execute()
}
