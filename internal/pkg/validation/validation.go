package validation

import "regexp"

// Indian mobile number: 10 digits, optional +91 prefix.
var phoneRe = regexp.MustCompile(`^(\+91)?[6-9][0-9]{9}$`)

// PIN: 4 to 6 digits.
var pinRe = regexp.MustCompile(`^[0-9]{4,6}$`)

// OTP codes are always 6 digits.
var otpRe = regexp.MustCompile(`^[0-9]{6}$`)

func IsValidPhone(phone string) bool {
	return phoneRe.MatchString(phone)
}

func IsValidPin(pin string) bool {
	return pinRe.MatchString(pin)
}

func IsValidOtp(code string) bool {
	return otpRe.MatchString(code)
}

// IsValidName allows letters, spaces, hyphens and apostrophes.
var nameRe = regexp.MustCompile(`^[A-Za-z\s\-']+$`)

func IsValidName(name string) bool {
	return name != "" && nameRe.MatchString(name)
}
