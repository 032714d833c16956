package main

import "github.com/andresmejia3/smilecam/cmd"

func main() {
	cmd.Execute()
}
