package main

import "github.com/dzjyyds666/aq-lite/cmd"

func main() {
	cmd.Execute()
}
