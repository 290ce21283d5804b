// Package validation checks user input before it is sent to the server or
// written to the settings store. The server stays the authority; these checks
// only catch what is obviously malformed.
package validation

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// ClockFormat is the HH:MM layout used for sleep times
const ClockFormat = "15:04"

const (
	MinQuality = 1
	MaxQuality = 5
)

// Required fails on blank input, naming the field
func Required(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s cannot be empty", field)
		}
		return nil
	}
}

// Clock checks an HH:MM time
func Clock(s string) error {
	if _, err := time.Parse(ClockFormat, strings.TrimSpace(s)); err != nil {
		return fmt.Errorf("invalid time %q (expected HH:MM)", s)
	}
	return nil
}

// Quality checks a 1-5 sleep rating
func Quality(q int) error {
	if q < MinQuality || q > MaxQuality {
		return fmt.Errorf("quality must be between %d and %d, got %d", MinQuality, MaxQuality, q)
	}
	return nil
}

// QualityString is Quality for form input
func QualityString(s string) error {
	q, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("quality must be a number")
	}
	return Quality(q)
}

// BaseURL checks an http(s) server root
func BaseURL(s string) error {
	u, err := url.Parse(s)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid server URL %q (expected http://host[:port])", s)
	}
	return nil
}

// Timeout checks a request timeout in seconds
func Timeout(sec int) error {
	if sec <= 0 {
		return fmt.Errorf("timeout must be a positive number of seconds, got %d", sec)
	}
	return nil
}

// PasswordsMatch is used by the registration forms
func PasswordsMatch(password, again string) error {
	if password != again {
		return fmt.Errorf("passwords do not match")
	}
	return nil
}
