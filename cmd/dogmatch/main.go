// dogmatch: CLI del navegador de perros (servidor BFF y shell interactivo).
package main

import "dog-match/internal/cli"

func main() {
	cli.Execute()
}
