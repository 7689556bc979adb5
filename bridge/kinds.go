package bridge

// Kind selects the host exception class for a classified error. The empty
// Kind selects the base class.
type Kind string

// BaseClassName is the name under which the errors module exports the base
// exception class.
const BaseClassName = "LibSignalErrorBase"

const (
	KindNone Kind = ""

	// Protocol
	KindDuplicatedMessage       Kind = "DuplicatedMessage"
	KindSealedSenderSelfSend    Kind = "SealedSenderSelfSend"
	KindUntrustedIdentity       Kind = "UntrustedIdentity"
	KindInvalidRegistrationID   Kind = "InvalidRegistrationId"
	KindInvalidSession          Kind = "InvalidSession"
	KindInvalidSenderKeySession Kind = "InvalidSenderKeySession"

	// Usernames
	KindBadNicknameCharacter                Kind = "BadNicknameCharacter"
	KindNicknameTooShort                    Kind = "NicknameTooShort"
	KindNicknameTooLong                     Kind = "NicknameTooLong"
	KindNicknameCannotBeEmpty               Kind = "NicknameCannotBeEmpty"
	KindCannotStartWithDigit                Kind = "CannotStartWithDigit"
	KindMissingSeparator                    Kind = "MissingSeparator"
	KindDiscriminatorCannotBeEmpty          Kind = "DiscriminatorCannotBeEmpty"
	KindDiscriminatorCannotBeZero           Kind = "DiscriminatorCannotBeZero"
	KindDiscriminatorCannotBeSingleDigit    Kind = "DiscriminatorCannotBeSingleDigit"
	KindDiscriminatorCannotHaveLeadingZeros Kind = "DiscriminatorCannotHaveLeadingZeros"
	KindBadDiscriminatorCharacter           Kind = "BadDiscriminatorCharacter"
	KindDiscriminatorTooLarge               Kind = "DiscriminatorTooLarge"

	// Username links
	KindInputDataTooLong                 Kind = "InputDataTooLong"
	KindInvalidEntropyDataLength         Kind = "InvalidEntropyDataLength"
	KindInvalidUsernameLinkEncryptedData Kind = "InvalidUsernameLinkEncryptedData"

	// I/O and media
	KindIoError               Kind = "IoError"
	KindInvalidMediaInput     Kind = "InvalidMediaInput"
	KindUnsupportedMediaInput Kind = "UnsupportedMediaInput"

	// Network
	KindChatServiceInactive Kind = "ChatServiceInactive"
	KindAppExpired          Kind = "AppExpired"
	KindDeviceDelinked      Kind = "DeviceDelinked"
	KindInvalidURI          Kind = "InvalidUri"
	KindRateLimitedError    Kind = "RateLimitedError"
	KindCdsiInvalidToken    Kind = "CdsiInvalidToken"
	KindSvrRequestFailed    Kind = "SvrRequestFailed"
	KindSvrRestoreFailed    Kind = "SvrRestoreFailed"
	KindSvrDataMissing      Kind = "SvrDataMissing"

	KindCancelled        Kind = "Cancelled"
	KindBackupValidation Kind = "BackupValidation"
)

var knownKinds = []Kind{
	KindDuplicatedMessage,
	KindSealedSenderSelfSend,
	KindUntrustedIdentity,
	KindInvalidRegistrationID,
	KindInvalidSession,
	KindInvalidSenderKeySession,
	KindBadNicknameCharacter,
	KindNicknameTooShort,
	KindNicknameTooLong,
	KindNicknameCannotBeEmpty,
	KindCannotStartWithDigit,
	KindMissingSeparator,
	KindDiscriminatorCannotBeEmpty,
	KindDiscriminatorCannotBeZero,
	KindDiscriminatorCannotBeSingleDigit,
	KindDiscriminatorCannotHaveLeadingZeros,
	KindBadDiscriminatorCharacter,
	KindDiscriminatorTooLarge,
	KindInputDataTooLong,
	KindInvalidEntropyDataLength,
	KindInvalidUsernameLinkEncryptedData,
	KindIoError,
	KindInvalidMediaInput,
	KindUnsupportedMediaInput,
	KindChatServiceInactive,
	KindAppExpired,
	KindDeviceDelinked,
	KindInvalidURI,
	KindRateLimitedError,
	KindCdsiInvalidToken,
	KindSvrRequestFailed,
	KindSvrRestoreFailed,
	KindSvrDataMissing,
	KindCancelled,
	KindBackupValidation,
}

// Kinds returns every kind the mapper can produce, in a stable order.
func Kinds() []Kind {
	out := make([]Kind, len(knownKinds))
	copy(out, knownKinds)
	return out
}

// IsKnown reports whether k is one of Kinds.
func (k Kind) IsKnown() bool {
	for _, known := range knownKinds {
		if k == known {
			return true
		}
	}
	return false
}

func (k Kind) String() string {
	if k == KindNone {
		return "LibSignalError"
	}
	return string(k)
}

// Property keys attached to constructed exceptions.
const (
	PropAddress        = "_addr"
	PropDistributionID = "distribution_id"
	PropRetryAfterSecs = "retryAfterSecs"
	PropTriesRemaining = "triesRemaining"
	PropUnknownFields  = "unknownFields"
)

// Props are the kind-specific fields attached to a host exception. Values
// are strings, unsigned integers, string slices or protocol.Address.
type Props map[string]any
