// Package usernames validates usernames of the form nickname.discriminator.
package usernames

import (
	"errors"
	"strconv"
	"strings"
)

const (
	// MinNicknameLength is the shortest nickname accepted by Parse.
	MinNicknameLength = 3
	// MaxNicknameLength is the longest nickname accepted by Parse.
	MaxNicknameLength = 32
)

// Username is a validated nickname and discriminator pair.
type Username struct {
	Nickname      string
	Discriminator uint64
	raw           string
}

func (u Username) String() string { return u.raw }

// Parse validates s and splits it at the last separator. The returned error
// is always a UsernameError.
func Parse(s string) (Username, error) {
	i := strings.LastIndexByte(s, '.')
	if i < 0 {
		return Username{}, MissingSeparator
	}
	nickname, discriminator := s[:i], s[i+1:]

	if err := validateNickname(nickname); err != nil {
		return Username{}, err
	}
	d, err := parseDiscriminator(discriminator)
	if err != nil {
		return Username{}, err
	}

	return Username{Nickname: nickname, Discriminator: d, raw: s}, nil
}

func validateNickname(nickname string) error {
	if nickname == "" {
		return NicknameCannotBeEmpty
	}
	if isDigit(nickname[0]) {
		return NicknameCannotStartWithDigit
	}
	for i := 0; i < len(nickname); i++ {
		c := nickname[i]
		if !isDigit(c) && !isASCIILetter(c) && c != '_' {
			return BadNicknameCharacter
		}
	}
	switch {
	case len(nickname) < MinNicknameLength:
		return NicknameTooShort
	case len(nickname) > MaxNicknameLength:
		return NicknameTooLong
	}
	return nil
}

func parseDiscriminator(s string) (uint64, error) {
	if s == "" {
		return 0, DiscriminatorCannotBeEmpty
	}
	for i := 0; i < len(s); i++ {
		if !isDigit(s[i]) {
			return 0, BadDiscriminatorCharacter
		}
	}
	if strings.Trim(s, "0") == "" {
		return 0, DiscriminatorCannotBeZero
	}
	if s[0] == '0' {
		return 0, DiscriminatorCannotHaveLeadingZeros
	}
	if len(s) < 2 {
		return 0, DiscriminatorCannotBeSingleDigit
	}

	d, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return 0, DiscriminatorTooLarge
		}
		return 0, BadDiscriminatorCharacter
	}
	return d, nil
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isASCIILetter(c byte) bool { return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') }
