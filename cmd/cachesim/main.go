// Package main provides the cachesim command-line interface.
package main

func main() {
	Execute()
}
