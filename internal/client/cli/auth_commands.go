package cli

import (
	"context"
	"fmt"
)

// RunRegister creates a new account and, when the server immediately
// issues a token, leaves the user signed in.
func (c *Cli) RunRegister(ctx context.Context) error {
	fmt.Println("=== Register ===")
	fmt.Println()

	username, err := readInput("Username: ")
	if err != nil {
		return fmt.Errorf("failed to read username: %w", err)
	}
	email, err := readInput("Email: ")
	if err != nil {
		return fmt.Errorf("failed to read email: %w", err)
	}
	password, err := readPassword("Password: ")
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}

	fmt.Println()
	fmt.Println("Creating account...")

	resp, err := c.auth.SignUp(ctx, username, email, password)
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println("Account created!")
	fmt.Printf("Username: %s\n", resp.Username)
	if resp.Access != "" {
		fmt.Println("You are now signed in.")
	} else {
		fmt.Println("Run 'trackr login' to sign in.")
	}

	return nil
}

// RunLogin signs in and stores the session.
func (c *Cli) RunLogin(ctx context.Context) error {
	fmt.Println("=== Login ===")
	fmt.Println()

	username, err := readInput("Username: ")
	if err != nil {
		return fmt.Errorf("failed to read username: %w", err)
	}
	password, err := readPassword("Password: ")
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}

	fmt.Println()
	fmt.Println("Authenticating...")

	resp, err := c.auth.SignIn(ctx, username, password)
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println("Login successful!")
	fmt.Printf("Signed in as %s <%s>\n", resp.Username, resp.Email)
	fmt.Println("Your session has been saved.")

	return nil
}

// RunLogout clears the stored session.
func (c *Cli) RunLogout(ctx context.Context) error {
	c.watcher.SignOut(ctx)
	fmt.Println("Signed out.")
	return nil
}

// RunWhoami prints the signed-in user as a single line, for scripting.
func (c *Cli) RunWhoami(ctx context.Context) error {
	c.watcher.Start(ctx)
	defer c.watcher.Stop()

	if !c.watcher.LoggedIn() {
		return fmt.Errorf("not signed in")
	}

	user := c.watcher.CurrentUser()
	fmt.Printf("%s <%s> (id %d)\n", user.Username, user.Email, user.ID)
	return nil
}

// RunStatus validates the stored session against the server and reports
// the result.
func (c *Cli) RunStatus(ctx context.Context) error {
	c.watcher.Start(ctx)
	defer c.watcher.Stop()

	if !c.watcher.Checked() {
		fmt.Println("Status: unknown")
		return nil
	}

	if c.watcher.LoggedIn() {
		user := c.watcher.CurrentUser()
		fmt.Println("Status: signed in")
		fmt.Printf("User:   %s <%s>\n", user.Username, user.Email)
		return nil
	}

	if c.auth.Token() != "" {
		fmt.Println("Status: signed out (stored session could not be verified right now)")
	} else {
		fmt.Println("Status: signed out")
	}
	return nil
}
