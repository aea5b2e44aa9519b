package utils

import (
	"fmt"
	"math/rand"
	"regexp"
	"strings"
	"time"
)

// GenerateLoginCode generates a 6-digit login code
func GenerateLoginCode() string {
	rng := rand.New(rand.NewSource(time.Now().UnixNano())) // Create a new random number generator
	code := ""
	for i := 0; i < 6; i++ {
		code += fmt.Sprintf("%d", rng.Intn(10)) // Generate a random digit (0-9) and append
	}
	return code
}

var slugStrip = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify turns a title into a URL slug, kept in sync with the title on save
func Slugify(title string) string {
	slug := strings.ToLower(strings.TrimSpace(title))
	slug = slugStrip.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}
