package cli

import (
	"context"
	"os"

	"github.com/vornexz/pay/internal/client/api"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login prompts for credentials and tries to authenticate. A rejected
// login is reported to the user and is not an error, the REPL simply
// stays on the logged out prompt.
func (a *App) Login(ctx context.Context) error {
	identifier, err := getSimpleText(a.reader, "Enter email or CPF", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout, "Enter password")
	if err != nil {
		return err
	}

	if !a.session.Login(ctx, identifier, string(password)) {
		printlnFn("Login failed: check your credentials and try again")
		return nil
	}

	printlnFn("Login successful")
	return nil
}

// Register walks the user through the signup form and creates an
// account. It does not log the user in.
func (a *App) Register(ctx context.Context) error {
	profile := api.RegisterProfile{}

	fields := []struct {
		prompt string
		dest   *string
		mask   func(string) string
	}{
		{"Full name", &profile.FullName, nil},
		{"Email", &profile.Email, nil},
		{"CPF", &profile.CPF, FormatCPF},
		{"RG", &profile.RG, nil},
		{"Phone", &profile.Phone, FormatPhone},
		{"Birth date (YYYY-MM-DD)", &profile.BirthDate, nil},
		{"Address", &profile.Address, nil},
		{"City", &profile.City, nil},
		{"State (UF)", &profile.State, nil},
		{"ZIP code", &profile.ZipCode, FormatCEP},
	}

	for _, f := range fields {
		value, err := getSimpleText(a.reader, f.prompt, os.Stdout)
		if err != nil {
			return err
		}
		if f.mask != nil {
			value = f.mask(value)
		}
		*f.dest = value
	}

	password, err := getPassword(os.Stdout, "Choose a password")
	if err != nil {
		return err
	}
	confirm, err := getPassword(os.Stdout, "Confirm password")
	if err != nil {
		return err
	}

	profile.Password = string(password)
	profile.ConfirmPassword = string(confirm)

	if err := a.session.Register(ctx, profile); err != nil {
		printlnFn("Registration failed:", err.Error())
		return err
	}

	printlnFn("Account created, you can now login")
	return nil
}

// Logout purges the local session. Always succeeds.
func (a *App) Logout(ctx context.Context) error {
	a.session.Logout()
	printlnFn("Logged out")
	return nil
}
