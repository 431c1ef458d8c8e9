package main

import "github.com/inovacc/kollect/cmd"

func main() {
	cmd.Execute()
}
