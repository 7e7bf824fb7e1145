package main

import "cuedeck/cmd"

func main() {
	cmd.Execute()
}
