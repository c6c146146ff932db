package reputation

import (
	"math"
)

// AuthStatus tags the caller's authentication state in a cost estimate.
type AuthStatus string

const (
	AuthAnonymous         AuthStatus = "anonymous"
	AuthWithoutCredential AuthStatus = "authenticated-without-credential"
	AuthWithCredential    AuthStatus = "authenticated-with-credential"
)

// CostEstimate predicts the wall-clock cost of the engagement scorer's
// baseline fetches so a caller can decide whether to proceed.
type CostEstimate struct {
	Status AuthStatus `json:"status"`
	// Communities is the number of distinct communities that would be fetched.
	Communities int `json:"communities"`
	// RequestsPerWindow is the rate budget the fetch would run under.
	RequestsPerWindow int `json:"requestsPerWindow"`
	// OptimisticBatches is the best-case cost in batch time units, assuming
	// no throttling.
	OptimisticBatches int `json:"optimisticBatches"`
	// PessimisticSeconds is the worst-case cost assuming a full backoff wait
	// every time the rate budget is exhausted.
	PessimisticSeconds int `json:"pessimisticSeconds"`
}

// Estimate computes the dry-run cost estimate for a request without
// performing any fetches.
func (e *Engine) Estimate(req *Request) *CostEstimate {
	window := resolveWindow(req.Activity, req.Window)

	inWindow := make([]*ActivityItem, 0, len(req.Activity))
	for _, item := range req.Activity {
		if window.Contains(item.CreatedAt) {
			inWindow = append(inWindow, item)
		}
	}

	communities := len(distinctCommunities(inWindow))
	policy := e.platform.Policy(req.Credential != "")

	status := AuthAnonymous

	switch {
	case req.Credential != "":
		status = AuthWithCredential
	case req.Authenticated:
		status = AuthWithoutCredential
	}

	optimistic := 0
	if communities > 0 {
		optimistic = int(math.Ceil(float64(communities) / float64(policy.BatchSize)))
	}

	rate := policy.RequestsPerWindow
	backoffSeconds := int(policy.Backoff.Seconds())
	pessimistic := (communities/rate)*backoffSeconds + communities%rate

	return &CostEstimate{
		Status:             status,
		Communities:        communities,
		RequestsPerWindow:  rate,
		OptimisticBatches:  optimistic,
		PessimisticSeconds: pessimistic,
	}
}
