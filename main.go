package main

import "rotor-viewer/cmd"

func main() {
	cmd.Execute()
}
