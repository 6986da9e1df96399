package main

import "github.com/svetlyi/gdrivepath/cmd"

func main() {
	cmd.Execute()
}
