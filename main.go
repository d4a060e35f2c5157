package main

import "member-api/cmd"

func main() {
	cmd.Execute()
}
