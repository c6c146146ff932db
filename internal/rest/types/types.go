// Package types defines the request and response shapes of the REST API.
package types

import (
	"github.com/google/uuid"
	"github.com/socialsentrix/sentrix/internal/reputation"
)

// SubmitProfileRequest is the body of POST /v1/profiles. The activity list
// and account metadata are stored as-is and scored on later reads.
type SubmitProfileRequest struct {
	Platform string                     `json:"platform"`
	Username string                     `json:"username"`
	Activity []*reputation.ActivityItem `json:"activity"`
	Account  reputation.AccountMetadata `json:"account"`
}

// SubmitProfileResponse confirms a stored snapshot.
type SubmitProfileResponse struct {
	ID uuid.UUID `json:"id"`
}
