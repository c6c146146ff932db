package reputation

import (
	"time"

	"github.com/socialsentrix/sentrix/pkg/utils"
)

const (
	verifiedEmailBonus  = 15
	premiumTierBonus    = 10
	badgesBonus         = 5
	trophiesBonus       = 5
	externalDomainBonus = 10
)

const hoursPerYear = 24 * 365.25

// scoreTrust computes the tiered trustworthiness heuristic over lifetime
// account metadata. The time window never applies here.
func scoreTrust(account AccountMetadata, now time.Time) TrustScore {
	result := TrustScore{
		PlatformAdmin:        account.PlatformAdmin,
		VerifiedEmail:        account.VerifiedEmail,
		PremiumTier:          account.PremiumTier,
		Badges:               account.Badges,
		Trophies:             account.Trophies,
		ExternalDomainHandle: account.ExternalDomainHandle,
		ModeratedCommunities: account.ModeratedCommunities,
	}

	if account.CreationDate != nil {
		result.AccountAgeYears = now.Sub(*account.CreationDate).Hours() / hoursPerYear
	}

	// Platform staff accounts are fully trusted.
	if account.PlatformAdmin {
		result.Score = 100
		return result
	}

	score := resolveTier(moderationReachTiers, largestModeratedCommunity(account.ModeratedCommunities))

	if account.VerifiedEmail {
		score += verifiedEmailBonus
	}

	if account.PremiumTier {
		score += premiumTierBonus
	}

	if len(account.Badges) > 0 {
		score += badgesBonus
	}

	if len(account.Trophies) > 0 {
		score += trophiesBonus
	}

	// Serving the handle from a custom domain proves control of it.
	if account.ExternalDomainHandle {
		score += externalDomainBonus
	}

	score += resolveTier(accountAgeTiers, int64(result.AccountAgeYears))
	score += resolveTier(trustKarmaTiers, int64(account.PostKarma+account.CommentKarma))

	result.Score = utils.ClampScore(float64(score))

	return result
}

// largestModeratedCommunity returns the member count of the account's largest
// moderated community, or zero when the account moderates nothing.
func largestModeratedCommunity(communities []ModeratedCommunity) int64 {
	var largest ApproxCount
	for _, community := range communities {
		if community.MemberCount > largest {
			largest = community.MemberCount
		}
	}

	return int64(largest)
}
