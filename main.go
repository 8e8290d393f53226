package main

import "github.com/samsaffron/mdreveal/cmd"

func main() {
	cmd.Execute()
}
