package cli

import (
	"context"
	"fmt"
	"os"
)

// Balance fetches and prints the account balance
func (a *App) Balance(ctx context.Context) error {
	balance, err := a.api.Balance(ctx, a.token())
	if err != nil {
		printlnFn("Could not load balance:", err.Error())
		return err
	}

	printlnFn("Balance:", FormatBRL(balance))
	return nil
}

// Transactions prints the latest statement entries
func (a *App) Transactions(ctx context.Context) error {
	txs, err := a.api.Transactions(ctx, a.token(), 20)
	if err != nil {
		printlnFn("Could not load transactions:", err.Error())
		return err
	}

	if len(txs) == 0 {
		printlnFn("No transactions yet")
		return nil
	}

	for _, tx := range txs {
		amount := FormatBRL(tx.AmountCents)
		if tx.Type == "debit" {
			amount = "-" + amount
		}
		when := ""
		if tx.CreatedAt != nil {
			when = tx.CreatedAt.Format("02/01/2006 15:04")
		}
		printlnFn(fmt.Sprintf("%-16s  %-28s  %12s", when, tx.Description, amount))
	}
	return nil
}

// Cards prints the payment cards on the account
func (a *App) Cards(ctx context.Context) error {
	cards, err := a.api.Cards(ctx, a.token())
	if err != nil {
		printlnFn("Could not load cards:", err.Error())
		return err
	}

	if len(cards) == 0 {
		printlnFn("No cards yet")
		return nil
	}

	for _, card := range cards {
		printlnFn(fmt.Sprintf("%s **** %s  exp %s  limit %s  [%s]",
			card.Brand, card.LastFour, card.Expiry, FormatBRL(card.LimitCents), card.Status))
	}
	return nil
}

// UpdateProfile edits personal data, confirmed with the current password
func (a *App) UpdateProfile(ctx context.Context) error {
	fields := map[string]string{}

	prompts := []struct {
		prompt string
		key    string
		mask   func(string) string
	}{
		{"Full name (enter to keep)", "full_name", nil},
		{"Phone (enter to keep)", "phone_number", FormatPhone},
		{"Address (enter to keep)", "address", nil},
		{"City (enter to keep)", "city", nil},
		{"State (enter to keep)", "state", nil},
		{"ZIP code (enter to keep)", "zip_code", FormatCEP},
	}

	for _, p := range prompts {
		value, err := getSimpleText(a.reader, p.prompt, os.Stdout)
		if err != nil {
			return err
		}
		if value == "" {
			continue
		}
		if p.mask != nil {
			value = p.mask(value)
		}
		fields[p.key] = value
	}

	if len(fields) == 0 {
		printlnFn("Nothing to change")
		return nil
	}

	password, err := getPassword(os.Stdout, "Confirm with your password")
	if err != nil {
		return err
	}

	user, err := a.api.UpdateData(ctx, a.token(), string(password), fields)
	if err != nil {
		printlnFn("Could not update your data:", err.Error())
		return err
	}

	printlnFn("Data updated for", user.Email)
	return nil
}

// Profile prints the logged in user's data
func (a *App) Profile(ctx context.Context) error {
	snap := a.session.Snapshot()
	if snap.User == nil {
		printlnFn("Not logged in")
		return nil
	}

	u := snap.User
	printlnFn("Name: ", u.FullName)
	printlnFn("Email:", u.Email)
	printlnFn("CPF:  ", FormatCPF(u.CPF))
	printlnFn("Phone:", FormatPhone(u.Phone))
	if u.Premium {
		printlnFn("Plan:  premium")
	}
	return nil
}
