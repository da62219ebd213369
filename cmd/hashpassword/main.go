/*
main.go - Creates the auth secret file for the planner server

Prompts for a username and a masked password, hashes the password with
Argon2id, and writes <username>:<hash> to the auth file the server reads
at startup.

FLAGS:
  -file  Auth file path (default: auth.secret, or $AUTH_FILE)
*/
package main

import (
	"flag"
	"fmt"
	"os"
	"syscall"

	"github.com/warp/timeoff-planner/api"
	"golang.org/x/term"
)

func main() {
	defaultFile := os.Getenv("AUTH_FILE")
	if defaultFile == "" {
		defaultFile = "auth.secret"
	}
	file := flag.String("file", defaultFile, "auth file path")
	flag.Parse()

	fmt.Print("Enter username: ")
	var username string
	if _, err := fmt.Scanln(&username); err != nil || username == "" {
		fmt.Fprintln(os.Stderr, "Username cannot be empty")
		os.Exit(1)
	}

	password := readPassword("Enter password:   ")
	confirm := readPassword("Confirm password: ")

	if password == "" {
		fmt.Fprintln(os.Stderr, "Password cannot be empty")
		os.Exit(1)
	}
	if password != confirm {
		fmt.Fprintln(os.Stderr, "Passwords do not match")
		os.Exit(1)
	}

	if err := api.CreateAuthFile(*file, username, password); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Auth file created: %s (user: %s)\n", *file, username)
}

func readPassword(prompt string) string {
	fmt.Print(prompt)
	password, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading password: %v\n", err)
		os.Exit(1)
	}
	return string(password)
}
