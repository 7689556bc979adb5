package usernames

import "fmt"

// UsernameError is a username rule violation.
type UsernameError uint8

const (
	BadNicknameCharacter UsernameError = iota + 1
	NicknameTooShort
	NicknameTooLong
	NicknameCannotBeEmpty
	NicknameCannotStartWithDigit
	MissingSeparator
	DiscriminatorCannotBeEmpty
	DiscriminatorCannotBeZero
	DiscriminatorCannotBeSingleDigit
	DiscriminatorCannotHaveLeadingZeros
	BadDiscriminatorCharacter
	DiscriminatorTooLarge
)

func (e UsernameError) Error() string {
	switch e {
	case BadNicknameCharacter:
		return "Username contains a character that is not allowed"
	case NicknameTooShort:
		return "Username nickname is too short"
	case NicknameTooLong:
		return "Username nickname is too long"
	case NicknameCannotBeEmpty:
		return "Username nickname cannot be empty"
	case NicknameCannotStartWithDigit:
		return "Username cannot start with a digit"
	case MissingSeparator:
		return "Username must contain a '.'"
	case DiscriminatorCannotBeEmpty:
		return "Username discriminator cannot be empty"
	case DiscriminatorCannotBeZero:
		return "Username discriminator cannot be zero"
	case DiscriminatorCannotBeSingleDigit:
		return "Username discriminator must have at least two digits"
	case DiscriminatorCannotHaveLeadingZeros:
		return "Username discriminator cannot have leading zeros"
	case BadDiscriminatorCharacter:
		return "Username discriminator contains a character that is not allowed"
	case DiscriminatorTooLarge:
		return "Username discriminator is too large"
	default:
		return fmt.Sprintf("username error (%d)", uint8(e))
	}
}

// UsernameLinkError is a failure to build or decode a username link.
type UsernameLinkError uint8

const (
	InputDataTooLong UsernameLinkError = iota + 1
	InvalidEntropyDataLength
	UsernameLinkDataTooShort
	HmacMismatch
	BadCiphertext
	InvalidDecryptedDataStructure
)

func (e UsernameLinkError) Error() string {
	switch e {
	case InputDataTooLong:
		return "Input data is too long"
	case InvalidEntropyDataLength:
		return "Entropy data has an invalid length"
	case UsernameLinkDataTooShort:
		return "Username link data is too short"
	case HmacMismatch:
		return "Username link HMAC does not match"
	case BadCiphertext:
		return "Username link ciphertext could not be decrypted"
	case InvalidDecryptedDataStructure:
		return "Decrypted username link data is malformed"
	default:
		return fmt.Sprintf("username link error (%d)", uint8(e))
	}
}

// ProofVerificationFailure reports that a username proof did not verify.
type ProofVerificationFailure struct{}

func (ProofVerificationFailure) Error() string { return "Username proof could not be verified" }
