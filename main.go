package main

import "ai-notebook.com/ai-notebook/cmd"

func main() {
	cmd.Execute()
}
