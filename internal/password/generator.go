// Package password generates throwaway secrets for provisioned accounts.
package password

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"
)

// MinLength is the shortest secret the directory accepts.
const MinLength = 8

// MaxLength is the longest secret bcrypt-backed directories can hash.
const MaxLength = 72

// DefaultLength is used when no length is configured.
const DefaultLength = 16

const (
	lower   = "abcdefghijkmnopqrstuvwxyz"
	upper   = "ABCDEFGHJKLMNPQRSTUVWXYZ"
	digits  = "23456789"
	symbols = "!#$%&*+-=?@^_"
)

var classes = []string{lower, upper, digits, symbols}

// Generator produces secrets containing at least one character of every class.
type Generator struct {
	length int
	random io.Reader
}

// NewGenerator creates a Generator with length clamped to [MinLength, MaxLength].
func NewGenerator(length int) *Generator {
	switch {
	case length < MinLength:
		length = MinLength
	case length > MaxLength:
		length = MaxLength
	}
	return &Generator{length: length, random: rand.Reader}
}

// Generate returns a fresh secret.
func (g *Generator) Generate() (string, error) {
	all := lower + upper + digits + symbols
	buf := make([]byte, 0, g.length)

	for _, class := range classes {
		c, err := g.pick(class)
		if err != nil {
			return "", err
		}
		buf = append(buf, c)
	}
	for len(buf) < g.length {
		c, err := g.pick(all)
		if err != nil {
			return "", err
		}
		buf = append(buf, c)
	}

	// Fisher-Yates so the guaranteed characters are not always in front.
	for i := len(buf) - 1; i > 0; i-- {
		j, err := g.intn(i + 1)
		if err != nil {
			return "", err
		}
		buf[i], buf[j] = buf[j], buf[i]
	}

	return string(buf), nil
}

func (g *Generator) pick(alphabet string) (byte, error) {
	i, err := g.intn(len(alphabet))
	if err != nil {
		return 0, err
	}
	return alphabet[i], nil
}

func (g *Generator) intn(n int) (int, error) {
	v, err := rand.Int(g.random, big.NewInt(int64(n)))
	if err != nil {
		return 0, fmt.Errorf("failed to read random source: %w", err)
	}
	return int(v.Int64()), nil
}
