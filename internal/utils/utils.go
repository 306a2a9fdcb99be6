package utils

import "regexp"

var phoneRe = regexp.MustCompile("^0[0-9]{8,10}$")

// CheckPhone reports whether s looks like a local mobile number:
// a leading zero followed by 8 to 10 digits.
func CheckPhone(s string) bool {
	return phoneRe.MatchString(s)
}
