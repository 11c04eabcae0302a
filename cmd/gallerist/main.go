package main

import (
	// Importing the provider aggregator ensures every driver's init()
	// function runs and registers it before any command resolves a provider
	_ "gallerist/internal/provider"
)

func main() {
	Execute()
}
