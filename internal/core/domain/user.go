package domain

type UserSummary struct {
	ID        string
	Username  string
	Email     string
	AvatarURL string
}

type VerificationStatus int

const (
	Unverified VerificationStatus = iota
	Verified
	Banned
)

// Principal is the authenticated caller of a request.
type Principal struct {
	UserID string
	Role   string
	Verify VerificationStatus
}
