package main

import "github.com/codetrail/worklog/cmd"

func main() {
	cmd.Execute()
}
