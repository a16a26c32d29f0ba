// Command vericura checks the credibility of health web pages.
package main

import "github.com/karandeol-26/VeriCura/internal/cli"

func main() {
	cli.Execute()
}
