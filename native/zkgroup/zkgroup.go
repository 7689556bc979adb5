// Package zkgroup defines the errors of zero-knowledge group credentials.
package zkgroup

// VerificationFailure reports that a zero-knowledge proof did not verify.
type VerificationFailure struct{}

func (VerificationFailure) Error() string { return "Verification failed" }

// DeserializationFailure reports bytes that do not encode the expected type.
type DeserializationFailure struct {
	Type string
}

func (e DeserializationFailure) Error() string {
	return "Failed to deserialize " + e.Type
}
