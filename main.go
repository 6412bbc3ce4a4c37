package main

import "github.com/julienpequegnot/polypulse/cmd"

func main() {
	cmd.Execute()
}
