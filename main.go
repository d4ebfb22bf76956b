package main

import "postwire/cmd"

func main() {
	cmd.Execute()
}
