//go:build ignore

// Prints a bcrypt hash for METRICS_PASSWORD_HASH.
//
//	go run scripts/hash-password.go
package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"inno8-site/internal/auth"
)

func main() {
	fmt.Println("Metrics password hash generator")
	fmt.Println("===============================")
	fmt.Println()

	reader := bufio.NewReader(os.Stdin)

	for {
		fmt.Print("Enter password to hash (or 'quit' to exit): ")
		password, err := reader.ReadString('\n')
		if err != nil {
			fmt.Println()
			return
		}

		password = strings.TrimSpace(password)
		if password == "" {
			continue
		}
		if strings.EqualFold(password, "quit") {
			break
		}

		hash, err := auth.HashPassword(password)
		if err != nil {
			fmt.Println("Error generating hash:", err)
			continue
		}

		fmt.Println()
		fmt.Println("Add this to your .env:")
		fmt.Printf("METRICS_PASSWORD_HASH='%s'\n", hash)
		fmt.Println()
	}
}
