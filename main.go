package main

import "smartnotes/cmd"

func main() {
	cmd.Execute()
}
