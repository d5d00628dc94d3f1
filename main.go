package main

import "github.com/Crush251/touchplay/cmd"

func main() {
	cmd.Execute()
}
