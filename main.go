package main

import "github.com/crunchbyte/creditprep/cmd"

func main() {
	cmd.Execute()
}
