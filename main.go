package main

import "gobill/cmd"

func main() {
	cmd.Execute()
}
