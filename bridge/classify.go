package bridge

import (
	"context"
	"errors"
	"net/url"

	"github.com/dop251/goja"

	"github.com/otelwasm/jsbridge/native"
	"github.com/otelwasm/jsbridge/native/attest"
	"github.com/otelwasm/jsbridge/native/backup"
	"github.com/otelwasm/jsbridge/native/crypto"
	"github.com/otelwasm/jsbridge/native/media/mp4"
	"github.com/otelwasm/jsbridge/native/media/webp"
	"github.com/otelwasm/jsbridge/native/net/cdsi"
	"github.com/otelwasm/jsbridge/native/net/chat"
	"github.com/otelwasm/jsbridge/native/net/svr"
	"github.com/otelwasm/jsbridge/native/protocol"
	"github.com/otelwasm/jsbridge/native/usernames"
	"github.com/otelwasm/jsbridge/native/zkgroup"
)

// Classification is a native error mapped onto the host exception taxonomy.
type Classification struct {
	Kind    Kind
	Message string
	Props   Props

	// Thrown is set when the error carries a value captured from a host
	// callback. It is rethrown instead of constructing a new exception.
	Thrown *ThrownException
	// Pending is set when the error is a host exception returned by a direct
	// call into the runtime. Its value is rethrown unchanged.
	Pending *goja.Exception
}

// Classify maps err to its kind and properties. It is total: errors it does
// not recognize map to the base class with their message.
func Classify(err error) Classification {
	switch e := err.(type) {
	case nil:
		return Classification{Message: "unknown error"}

	case *goja.Exception:
		return Classification{Message: describeFailure(e), Pending: e}
	case *ThrownException:
		return Classification{Message: e.Error(), Thrown: e}
	case *native.IOError:
		if t, ok := e.Err.(*ThrownException); ok && e.Kind == native.IOKindOther {
			return Classification{Message: t.Error(), Thrown: t}
		}
		return base(e)
	case *native.CancellationError:
		return kinded(KindCancelled, e, nil)

	case *protocol.Error:
		return classifyProtocol(e)
	case usernames.UsernameError:
		return kinded(usernameKinds[e], e, nil)
	case usernames.UsernameLinkError:
		return classifyUsernameLink(e)

	case *mp4.IOError:
		return kinded(KindIoError, e, nil)
	case *mp4.ParseError:
		return classifyMP4(e)
	case *webp.IOError:
		return kinded(KindIoError, e, nil)
	case *webp.ParseError:
		return classifyWebP(e)

	case *chat.Error:
		return classifyChat(e)
	case *cdsi.LookupError:
		return classifyLookup(e)
	case *svr.Error:
		return classifySVR(e)
	case *url.Error:
		if e.Op == "parse" {
			return kinded(KindInvalidURI, e, nil)
		}

	case *backup.ReadError:
		fields := make([]string, len(e.FoundUnknownFields))
		copy(fields, e.FoundUnknownFields)
		return Classification{
			Kind:    KindBackupValidation,
			Message: e.Message(),
			Props:   Props{PropUnknownFields: fields},
		}

	case *attest.Error, *crypto.Error, zkgroup.VerificationFailure,
		zkgroup.DeserializationFailure, usernames.ProofVerificationFailure:
		return base(e)
	}

	if err == context.Canceled {
		return kinded(KindCancelled, err, nil)
	}

	// Wrapped by the caller: classify the cause, keep the outer message.
	if inner := errors.Unwrap(err); inner != nil {
		c := Classify(inner)
		if c.Thrown == nil && c.Pending == nil {
			c.Message = err.Error()
		}
		return c
	}
	return base(err)
}

func base(err error) Classification {
	return Classification{Message: err.Error()}
}

func kinded(kind Kind, err error, props Props) Classification {
	return Classification{Kind: kind, Message: err.Error(), Props: props}
}

func classifyProtocol(e *protocol.Error) Classification {
	switch e.Kind {
	case protocol.KindDuplicatedMessage:
		return kinded(KindDuplicatedMessage, e, nil)
	case protocol.KindSealedSenderSelfSend:
		return kinded(KindSealedSenderSelfSend, e, nil)
	case protocol.KindUntrustedIdentity:
		return kinded(KindUntrustedIdentity, e, Props{PropAddress: e.Address.Name})
	case protocol.KindInvalidRegistrationID:
		return kinded(KindInvalidRegistrationID, e, Props{PropAddress: e.Address})
	case protocol.KindInvalidSessionStructure:
		return kinded(KindInvalidSession, e, nil)
	case protocol.KindInvalidSenderKeySession:
		return kinded(KindInvalidSenderKeySession, e, Props{PropDistributionID: e.DistributionID.String()})
	default:
		return base(e)
	}
}

var usernameKinds = map[usernames.UsernameError]Kind{
	usernames.BadNicknameCharacter:                KindBadNicknameCharacter,
	usernames.NicknameTooShort:                    KindNicknameTooShort,
	usernames.NicknameTooLong:                     KindNicknameTooLong,
	usernames.NicknameCannotBeEmpty:               KindNicknameCannotBeEmpty,
	usernames.NicknameCannotStartWithDigit:        KindCannotStartWithDigit,
	usernames.MissingSeparator:                    KindMissingSeparator,
	usernames.DiscriminatorCannotBeEmpty:          KindDiscriminatorCannotBeEmpty,
	usernames.DiscriminatorCannotBeZero:           KindDiscriminatorCannotBeZero,
	usernames.DiscriminatorCannotBeSingleDigit:    KindDiscriminatorCannotBeSingleDigit,
	usernames.DiscriminatorCannotHaveLeadingZeros: KindDiscriminatorCannotHaveLeadingZeros,
	usernames.BadDiscriminatorCharacter:           KindBadDiscriminatorCharacter,
	usernames.DiscriminatorTooLarge:               KindDiscriminatorTooLarge,
}

func classifyUsernameLink(e usernames.UsernameLinkError) Classification {
	switch e {
	case usernames.InputDataTooLong:
		return kinded(KindInputDataTooLong, e, nil)
	case usernames.InvalidEntropyDataLength:
		return kinded(KindInvalidEntropyDataLength, e, nil)
	case usernames.UsernameLinkDataTooShort, usernames.HmacMismatch,
		usernames.BadCiphertext, usernames.InvalidDecryptedDataStructure:
		return kinded(KindInvalidUsernameLinkEncryptedData, e, nil)
	default:
		return base(e)
	}
}

func classifyMP4(e *mp4.ParseError) Classification {
	switch e.Kind {
	case mp4.InvalidBoxLayout, mp4.InvalidInput, mp4.MissingRequiredBox, mp4.TruncatedBox:
		return kinded(KindInvalidMediaInput, e, nil)
	case mp4.UnsupportedBox, mp4.UnsupportedBoxLayout, mp4.UnsupportedFormat:
		return kinded(KindUnsupportedMediaInput, e, nil)
	default:
		return kinded(KindInvalidMediaInput, e, nil)
	}
}

func classifyWebP(e *webp.ParseError) Classification {
	switch e.Kind {
	case webp.InvalidChunkLayout, webp.InvalidInput, webp.InvalidVp8lPrefixCode,
		webp.MissingRequiredChunk, webp.TruncatedChunk:
		return kinded(KindInvalidMediaInput, e, nil)
	case webp.UnsupportedChunk, webp.UnsupportedVp8lVersion:
		return kinded(KindUnsupportedMediaInput, e, nil)
	default:
		return kinded(KindInvalidMediaInput, e, nil)
	}
}

func classifyChat(e *chat.Error) Classification {
	switch e.Kind {
	case chat.ServiceInactive:
		return kinded(KindChatServiceInactive, e, nil)
	case chat.AppExpired:
		return kinded(KindAppExpired, e, nil)
	case chat.DeviceDeregistered:
		return kinded(KindDeviceDelinked, e, nil)
	default:
		// TODO: split retryable chat failures (timeouts, unavailable) from
		// terminal ones once callers agree on a kind for each.
		return kinded(KindIoError, e, nil)
	}
}

func classifyLookup(e *cdsi.LookupError) Classification {
	switch e.Kind {
	case cdsi.RateLimited:
		return kinded(KindRateLimitedError, e, Props{PropRetryAfterSecs: e.RetryAfterSeconds})
	case cdsi.AttestationError:
		if e.Err == nil {
			return base(e)
		}
		return Classify(e.Err)
	case cdsi.InvalidArgument:
		return base(e)
	case cdsi.InvalidToken:
		return kinded(KindCdsiInvalidToken, e, nil)
	case cdsi.ConnectionTimedOut, cdsi.ConnectTransport, cdsi.WebSocket, cdsi.Protocol,
		cdsi.InvalidResponse, cdsi.ParseError, cdsi.Server:
		return kinded(KindIoError, e, nil)
	default:
		return base(e)
	}
}

func classifySVR(e *svr.Error) Classification {
	switch e.Kind {
	case svr.Service, svr.ConnectionTimedOut, svr.Connect:
		return kinded(KindIoError, e, nil)
	case svr.AttestationError:
		if e.Err == nil {
			return base(e)
		}
		return Classify(e.Err)
	case svr.RequestFailed:
		return kinded(KindSvrRequestFailed, e, nil)
	case svr.RestoreFailed:
		return kinded(KindSvrRestoreFailed, e, Props{PropTriesRemaining: e.TriesRemaining})
	case svr.DataMissing:
		return kinded(KindSvrDataMissing, e, nil)
	default:
		return base(e)
	}
}
