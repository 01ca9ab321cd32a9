package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func baseConfig() RuleConfig {
	return RuleConfig{
		OpenHour:            8,
		CloseHour:           22,
		SlotIntervalMinutes: 15,
		MinDurationMinutes:  30,
		MaxDurationMinutes:  120,
		MaxActiveBookings:   3,
		MinNoticeMinutes:    30,
		MaxDaysAhead:        14,
	}
}

func TestRuleConfigValidate(t *testing.T) {
	cfg := baseConfig()
	require.NoError(t, cfg.Validate())
}

func TestRuleConfigMergeKeepsUnpatchedFields(t *testing.T) {
	cfg := baseConfig()

	merged := cfg.Merge(RuleConfigPatch{CloseHour: intPtr(20)})

	assert.Equal(t, 20, merged.CloseHour)
	assert.Equal(t, cfg.OpenHour, merged.OpenHour)
	assert.Equal(t, cfg.MaxActiveBookings, merged.MaxActiveBookings)
	require.NoError(t, merged.Validate())
}

func TestRuleConfigMergeOptionalLimits(t *testing.T) {
	cfg := baseConfig()

	merged := cfg.Merge(RuleConfigPatch{
		MaxConsecutive:  intPtr(2),
		CooldownMinutes: intPtr(60),
	})
	require.NotNil(t, merged.MaxConsecutive)
	assert.Equal(t, 2, *merged.MaxConsecutive)
	require.NotNil(t, merged.CooldownMinutes)
	assert.Equal(t, 60, *merged.CooldownMinutes)
	require.NoError(t, merged.Validate())

	// Ноль снимает лимит.
	cleared := merged.Merge(RuleConfigPatch{
		MaxConsecutive:  intPtr(0),
		CooldownMinutes: intPtr(0),
	})
	assert.Nil(t, cleared.MaxConsecutive)
	assert.Nil(t, cleared.CooldownMinutes)
	require.NoError(t, cleared.Validate())
}

func TestRuleConfigValidateRejectsInconsistent(t *testing.T) {
	tests := []struct {
		name  string
		patch RuleConfigPatch
	}{
		{"close before open", RuleConfigPatch{OpenHour: intPtr(20), CloseHour: intPtr(10)}},
		{"close equals open", RuleConfigPatch{OpenHour: intPtr(10), CloseHour: intPtr(10)}},
		{"zero slot interval", RuleConfigPatch{SlotIntervalMinutes: intPtr(0)}},
		{"max duration below min", RuleConfigPatch{MaxDurationMinutes: intPtr(15)}},
		{"zero max active", RuleConfigPatch{MaxActiveBookings: intPtr(0)}},
		{"negative notice", RuleConfigPatch{MinNoticeMinutes: intPtr(-1)}},
		{"zero days ahead", RuleConfigPatch{MaxDaysAhead: intPtr(0)}},
		{"negative open hour", RuleConfigPatch{OpenHour: intPtr(-1)}},
		{"close hour past midnight", RuleConfigPatch{CloseHour: intPtr(25)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			merged := baseConfig().Merge(tt.patch)
			assert.Error(t, merged.Validate())
		})
	}
}
