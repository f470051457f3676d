package bump

import (
	"testing"
	"time"

	"github.com/hublist/hublist/hublist/database/models"
)

func Test_CooldownDuration(t *testing.T) {
	tests := []struct {
		name string
		tier string
		want time.Duration
	}{
		{name: "free", tier: models.TierFree, want: 6 * time.Hour},
		{name: "gold", tier: models.TierGold, want: 3 * time.Hour},
		{name: "platinum", tier: models.TierPlatinum, want: 2 * time.Hour},
		{name: "premium", tier: models.TierPremium, want: 2 * time.Hour},
		{name: "unknown tier falls back to free", tier: "enterprise", want: 6 * time.Hour},
		{name: "empty tier falls back to free", tier: "", want: 6 * time.Hour},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CooldownDuration(tt.tier); got != tt.want {
				t.Errorf("CooldownDuration(%q) = %v, want %v", tt.tier, got, tt.want)
			}
		})
	}
}

func Test_CanBump(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	ago := func(d time.Duration) *time.Time {
		ts := now.Add(-d)
		return &ts
	}

	tests := []struct {
		name          string
		lastBumpAt    *time.Time
		tier          string
		wantEligible  bool
		wantRemaining time.Duration
	}{
		{
			name:         "never bumped is always eligible",
			lastBumpAt:   nil,
			tier:         models.TierFree,
			wantEligible: true,
		},
		{
			name:         "free tier after full cooldown",
			lastBumpAt:   ago(6 * time.Hour),
			tier:         models.TierFree,
			wantEligible: true,
		},
		{
			name:          "free tier one minute in",
			lastBumpAt:    ago(time.Minute),
			tier:          models.TierFree,
			wantEligible:  false,
			wantRemaining: 5*time.Hour + 59*time.Minute,
		},
		{
			name:         "premium after two hours",
			lastBumpAt:   ago(2 * time.Hour),
			tier:         models.TierPremium,
			wantEligible: true,
		},
		{
			name:          "platinum just under two hours",
			lastBumpAt:    ago(2*time.Hour - time.Second),
			tier:          models.TierPlatinum,
			wantEligible:  false,
			wantRemaining: time.Second,
		},
		{
			name:          "gold half way",
			lastBumpAt:    ago(90 * time.Minute),
			tier:          models.TierGold,
			wantEligible:  false,
			wantRemaining: 90 * time.Minute,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eligible, remaining := CanBump(tt.lastBumpAt, tt.tier, now)
			if eligible != tt.wantEligible {
				t.Errorf("CanBump() eligible = %v, want %v", eligible, tt.wantEligible)
			}
			if remaining != tt.wantRemaining {
				t.Errorf("CanBump() remaining = %v, want %v", remaining, tt.wantRemaining)
			}
		})
	}
}

func Test_FormatWait(t *testing.T) {
	tests := []struct {
		name string
		d    time.Duration
		want string
	}{
		{name: "two hours five minutes", d: 125 * time.Minute, want: "2h 5m"},
		{name: "floors seconds", d: 5*time.Hour + 59*time.Minute + 59*time.Second, want: "5h 59m"},
		{name: "zero", d: 0, want: "0h 0m"},
		{name: "negative clamps to zero", d: -time.Minute, want: "0h 0m"},
		{name: "under a minute", d: 30 * time.Second, want: "0h 0m"},
		{name: "exactly six hours", d: 6 * time.Hour, want: "6h 0m"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatWait(tt.d); got != tt.want {
				t.Errorf("FormatWait(%v) = %q, want %q", tt.d, got, tt.want)
			}
		})
	}
}
