package main

import "fab-catalog/cmd"

func main() {
	cmd.Execute()
}
