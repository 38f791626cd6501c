/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Command tablectl manages tablestore tables and the activity log from the shell.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd(newApp()).Execute(); err != nil {
		os.Exit(1)
	}
}
