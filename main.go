package main

import "github.com/jkarvo/libris/cmd/libris"

func main() {
	libris.Execute()
}
