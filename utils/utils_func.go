package utils

import (
	"fmt"
	"os"
	"strings"

	"github.com/joy095/consult/config"
)

func init() {
	config.LoadEnv()
}

func GetJWTSecret() []byte {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		fmt.Println("WARNING: JWT_SECRET environment variable not set.")
		return []byte("default-insecure-secret-only-for-development")
	}
	return []byte(secret)
}

// HumanizeType turns a notification type tag into a push title:
// "session_accepted" becomes "Session Accepted".
func HumanizeType(notifType string) string {
	words := strings.Split(notifType, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
