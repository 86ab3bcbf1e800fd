package main

import "aniworld/cmd"

func main() {
	cmd.Execute()
}
