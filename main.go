package main

import "github.com/Rorical/Nyssa/cmd"

func main() {
	cmd.Execute()
}
