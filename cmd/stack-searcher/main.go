package main

// main is the entry point for the stack-searcher application. Execute (in
// root.go) sets up the Cobra command tree, loads configuration, and invokes
// the CLI run logic; it also owns error printing and the exit status.
func main() {
	Execute()
}
