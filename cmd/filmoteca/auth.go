package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

const commandTimeout = 30 * time.Second

func loginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login [email]",
		Short: "Sign in to the catalog server",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.close()

			email := ""
			if len(args) > 0 {
				email = args[0]
			} else {
				email, err = promptLine("Email: ")
				if err != nil {
					return err
				}
			}

			password, err := promptPassword("Password: ")
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
			defer cancel()

			user, err := a.auth.Login(ctx, email, password)
			if err != nil {
				return err
			}

			fmt.Printf("Signed in as %s <%s>\n", user.Name, user.Email)
			return nil
		},
	}
}

func registerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "register",
		Short: "Create an account and sign in",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.close()

			name, err := promptLine("Name: ")
			if err != nil {
				return err
			}
			email, err := promptLine("Email: ")
			if err != nil {
				return err
			}
			password, err := promptPassword("Password: ")
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
			defer cancel()

			user, err := a.auth.Register(ctx, name, email, password)
			if err != nil {
				return err
			}

			fmt.Printf("Welcome, %s! You are signed in.\n", user.Name)
			return nil
		},
	}
}

func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and clear the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.close()

			ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
			defer cancel()

			a.auth.Logout(ctx)
			fmt.Println("Signed out.")
			return nil
		},
	}
}

func whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.close()

			ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
			defer cancel()
			a.auth.Bootstrap(ctx)

			user := a.auth.CurrentUser()
			if user == nil {
				fmt.Println("Not signed in.")
				return nil
			}

			fmt.Printf("%s <%s>\n", user.Name, user.Email)
			if !user.RegisteredAt.IsZero() {
				fmt.Printf("Member since %s\n", user.RegisteredAt.Format("2006-01-02"))
			}
			if expiry := a.auth.SessionExpiry(); !expiry.IsZero() {
				fmt.Printf("Session valid until %s\n", expiry.Local().Format(time.RFC1123))
			}
			return nil
		},
	}
}

// promptLine reads one trimmed line from stdin
func promptLine(label string) (string, error) {
	fmt.Print(label)
	reader := bufio.NewReader(os.Stdin)
	input, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimSpace(input), nil
}

// promptPassword reads a password without echoing it
func promptPassword(label string) (string, error) {
	fmt.Print(label)
	passwordBytes, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println() // Add newline after hidden input
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return string(passwordBytes), nil
}
