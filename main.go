// SPDX-License-Identifier: MPL-2.0

package main

import cmd "dca-cli/cmd/dca"

func main() {
	cmd.Execute()
}
