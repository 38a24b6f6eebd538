// Package main provides the CLI entrypoint for mdsee.
package main

func main() {
	Execute()
}
