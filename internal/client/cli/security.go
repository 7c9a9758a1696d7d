package cli

import (
	"context"
	"os"

	"github.com/vornexz/pay/internal/client/api"
)

// Security shows the account security settings and offers the
// interactive toggles: two factor enrollment and biometric unlock.
func (a *App) Security(ctx context.Context) error {
	settings, err := a.api.SecuritySettings(ctx, a.token())
	if err != nil {
		printlnFn("Could not load security settings:", err.Error())
		return err
	}

	printlnFn("Two factor:", onOff(settings.TwoFactorEnabled), methodSuffix(settings))
	printlnFn("Biometric: ", onOff(settings.BiometricEnabled))

	choice, err := getSimpleText(a.reader,
		"Action: (1) enable TOTP  (2) enable email codes  (3) toggle biometric  (enter to skip)", os.Stdout)
	if err != nil {
		return err
	}

	switch choice {
	case "1":
		return a.enableTwoFactor(ctx, "totp")
	case "2":
		return a.enableTwoFactor(ctx, "email")
	case "3":
		return a.toggleBiometric(ctx, !settings.BiometricEnabled)
	default:
		return nil
	}
}

// enableTwoFactor stages the chosen method, then asks for the first
// code to finish enrollment.
func (a *App) enableTwoFactor(ctx context.Context, method string) error {
	uri, err := a.api.EnableTwoFactor(ctx, a.token(), method)
	if err != nil {
		printlnFn("Could not enable two factor:", err.Error())
		return err
	}

	switch method {
	case "totp":
		printlnFn("Add this URI to your authenticator app:")
		printlnFn(uri)
	case "email":
		if err := a.api.SendEmailCode(ctx, a.token()); err != nil {
			printlnFn("Could not send the email code:", err.Error())
			return err
		}
		printlnFn("A verification code was sent to your email")
	}

	code, err := getSimpleText(a.reader, "Enter the 6 digit code", os.Stdout)
	if err != nil {
		return err
	}

	if err := a.api.VerifyTwoFactor(ctx, a.token(), code); err != nil {
		printlnFn("Verification failed:", err.Error())
		return err
	}

	printlnFn("Two factor enabled")
	return nil
}

func (a *App) toggleBiometric(ctx context.Context, enabled bool) error {
	if err := a.api.SetBiometric(ctx, a.token(), enabled); err != nil {
		printlnFn("Could not update biometric unlock:", err.Error())
		return err
	}
	printlnFn("Biometric unlock:", onOff(enabled))
	return nil
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}

func methodSuffix(s *api.SecuritySettings) string {
	if s.TwoFactorEnabled && s.TwoFactorMethod != "" {
		return "(" + s.TwoFactorMethod + ")"
	}
	return ""
}
