package model

import (
	"errors"
	"fmt"
	"regexp"
	"unicode/utf8"
)

// ErrInvalidInput wraps every validation failure.
var ErrInvalidInput = errors.New("invalid input")

var (
	usernamePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]{0,63}$`)
	serverIDPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._:-]{0,63}$`)
)

// ValidateUsername checks the username format used for login.
func ValidateUsername(s string) error {
	if !usernamePattern.MatchString(s) {
		return fmt.Errorf("%w: username must be 1-64 letters, digits, '.', '_' or '-'", ErrInvalidInput)
	}
	return nil
}

// ValidatePassword rejects empty passwords and anything bcrypt would
// silently truncate.
func ValidatePassword(s string) error {
	if s == "" {
		return fmt.Errorf("%w: password must not be empty", ErrInvalidInput)
	}
	if len(s) > 72 {
		return fmt.Errorf("%w: password must be at most 72 bytes", ErrInvalidInput)
	}
	return nil
}

// Validate checks the server id and field lengths against the column sizes.
func (s *Server) Validate() error {
	if !serverIDPattern.MatchString(s.ID) {
		return fmt.Errorf("%w: id must be 1-64 letters, digits, '.', '_', ':' or '-'", ErrInvalidInput)
	}
	fields := []struct {
		name  string
		value string
		max   int
		req   bool
	}{
		{"server_type", s.ServerType, 128, true},
		{"os", s.OS, 64, true},
		{"hostname", s.Hostname, 255, true},
		{"tailscale_ip", s.TailscaleIP, 64, false},
		{"local_ip", s.LocalIP, 64, false},
	}
	for _, f := range fields {
		if f.req && f.value == "" {
			return fmt.Errorf("%w: %s is required", ErrInvalidInput, f.name)
		}
		if utf8.RuneCountInString(f.value) > f.max {
			return fmt.Errorf("%w: %s must be at most %d characters", ErrInvalidInput, f.name, f.max)
		}
	}
	return nil
}
