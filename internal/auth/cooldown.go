package auth

import "time"

// CooldownExpired reports whether the attempt window that started at
// lastAttempt is already over. The window is a time.ParseDuration
// string such as "24h".
func CooldownExpired(lastAttempt time.Time, window string) (bool, error) {
	d, err := time.ParseDuration(window)
	if err != nil {
		return false, err
	}
	return time.Since(lastAttempt) >= d, nil
}
