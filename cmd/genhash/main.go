// Command genhash prints the bcrypt hash used for stored user passwords.
// Usage: go run ./cmd/genhash <password>
package main

import (
	"fmt"
	"os"

	"retailpos/internal/service"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: genhash <password>")
		os.Exit(2)
	}
	h, err := service.HashPassword(os.Args[1])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Println(h)
}
