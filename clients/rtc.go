package clients

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"time"

	"golang.org/x/crypto/argon2"
)

// RTC key derivation parameters. The per-channel key is derived from the app
// secret so one leaked credential never exposes another channel.
const (
	rtcKDFIterations  = 1
	rtcKDFMemory      = 32 * 1024
	rtcKDFParallelism = 2
	rtcKDFKeyLength   = 32
)

// JoinCredential is what a client needs to join a real-time session channel.
// The media transport itself belongs to the external provider.
type JoinCredential struct {
	Channel   string    `json:"channel"`
	UID       string    `json:"uid"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// RTCTokenBuilder builds join credentials for real-time session channels.
type RTCTokenBuilder struct {
	appSecret []byte
	ttl       time.Duration
}

// NewRTCTokenBuilder creates a builder. ttl bounds credential validity; zero
// falls back to one hour.
func NewRTCTokenBuilder(appSecret string, ttl time.Duration) *RTCTokenBuilder {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &RTCTokenBuilder{
		appSecret: []byte(appSecret),
		ttl:       ttl,
	}
}

// BuildToken issues a signed join credential for (channel, uid).
func (b *RTCTokenBuilder) BuildToken(channel, uid string) JoinCredential {
	expiresAt := time.Now().Add(b.ttl)

	key := argon2.IDKey(b.appSecret, []byte(channel), rtcKDFIterations, rtcKDFMemory, rtcKDFParallelism, rtcKDFKeyLength)

	mac := hmac.New(sha256.New, key)
	fmt.Fprintf(mac, "%s:%s:%d", channel, uid, expiresAt.Unix())
	token := base64.RawURLEncoding.EncodeToString(mac.Sum(nil))

	return JoinCredential{
		Channel:   channel,
		UID:       uid,
		Token:     fmt.Sprintf("%s.%d", token, expiresAt.Unix()),
		ExpiresAt: expiresAt,
	}
}

// VerifyToken checks a credential previously issued by BuildToken.
// Token format is "<sig>.<expiry unix>".
func (b *RTCTokenBuilder) VerifyToken(channel, uid, token string) bool {
	dot := strings.LastIndexByte(token, '.')
	if dot < 0 {
		return false
	}
	sig := token[:dot]
	expUnix, err := strconv.ParseInt(token[dot+1:], 10, 64)
	if err != nil {
		return false
	}

	if time.Now().Unix() > expUnix {
		return false
	}

	key := argon2.IDKey(b.appSecret, []byte(channel), rtcKDFIterations, rtcKDFMemory, rtcKDFParallelism, rtcKDFKeyLength)
	mac := hmac.New(sha256.New, key)
	fmt.Fprintf(mac, "%s:%s:%d", channel, uid, expUnix)
	expected := base64.RawURLEncoding.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(sig), []byte(expected))
}
