package utils

import (
	"fmt"
	"regexp"
	"strings"
)

// ValidateEmail reports whether the input is a plausible email address.
func ValidateEmail(email string) bool {
	const emailPattern = `^(?i)[a-z0-9._%+\-]+@(?:[a-z0-9\-]+\.)+[a-z]{2,}$`
	matched, err := regexp.MatchString(emailPattern, email)
	return err == nil && matched
}

// ValidatePassword reports whether the input is an acceptable password:
// at least 8 characters with both letters and numbers.
func ValidatePassword(password string) bool {
	if len(password) < 8 {
		return false
	}
	containsLetter, _ := regexp.MatchString(`[a-zA-Z]`, password)
	containsNumber, _ := regexp.MatchString(`[0-9]`, password)
	return containsLetter && containsNumber
}

// PrintError prints a banner-framed error message to the shell.
func PrintError(message string) {
	message = "ERROR: " + message
	bannerLine := strings.Repeat("=", len(message)+4)

	fmt.Println(bannerLine)
	fmt.Printf("= %s =\n", message)
	fmt.Println(bannerLine)
	fmt.Println()
}
