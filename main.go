/*
Copyright © 2025 Cairn Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package main

import "github.com/cairnhq/cairn/cmd"

func main() {
	cmd.Execute()
}
