package reputation_test

import (
	"context"
	"testing"
	"time"

	"github.com/socialsentrix/sentrix/internal/reputation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreTrust(t *testing.T) {
	t.Parallel()

	yearsAgo := func(years int) *time.Time {
		date := time.Now().UTC().AddDate(-years, 0, -1)
		return &date
	}

	tests := []struct {
		name     string
		account  reputation.AccountMetadata
		expected int
	}{
		{
			name:     "empty account",
			account:  reputation.AccountMetadata{},
			expected: 0,
		},
		{
			name: "platform admin overrides everything",
			account: reputation.AccountMetadata{
				PlatformAdmin: true,
				PostKarma:     -5000,
			},
			expected: 100,
		},
		{
			name: "verified email and premium",
			account: reputation.AccountMetadata{
				VerifiedEmail: true,
				PremiumTier:   true,
			},
			expected: 25,
		},
		{
			name: "aged account with karma",
			account: reputation.AccountMetadata{
				CreationDate: yearsAgo(7),
				PostKarma:    8_000,
				CommentKarma: 3_000,
			},
			expected: 32, // 22 age + 10 karma
		},
		{
			name: "external domain handle",
			account: reputation.AccountMetadata{
				ExternalDomainHandle: true,
			},
			expected: 10,
		},
		{
			name: "moderator of a large community",
			account: reputation.AccountMetadata{
				ModeratedCommunities: []reputation.ModeratedCommunity{
					{Name: "niche", MemberCount: 1_500},
					{Name: "huge", MemberCount: 2_000_000},
				},
			},
			expected: 35,
		},
		{
			name: "everything maxed clamps to 100",
			account: reputation.AccountMetadata{
				CreationDate:  yearsAgo(16),
				PostKarma:     90_000,
				CommentKarma:  20_000,
				VerifiedEmail: true,
				PremiumTier:   true,
				Badges:        []string{"gold"},
				Trophies:      []string{"veteran"},
				ModeratedCommunities: []reputation.ModeratedCommunity{
					{Name: "huge", MemberCount: 3_000_000},
				},
			},
			expected: 100,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			engine, _ := newTestEngine(reputation.PlatformReddit())

			result, err := engine.Score(context.Background(), &reputation.Request{Account: tt.account})
			require.NoError(t, err)

			assert.Equal(t, tt.expected, result.T.Score)
		})
	}
}
