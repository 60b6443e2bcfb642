package domain

// MFASetup is returned by startMfaSetup: the pending secret and the
// otpauth:// URL authenticator apps scan.
type MFASetup struct {
	Secret string
	OTPURL string
}
