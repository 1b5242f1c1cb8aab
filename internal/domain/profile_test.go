package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validProfile() *Profile {
	return &Profile{
		ID:            "alice",
		Age:           29,
		PreferredAges: AgeRange{Min: 25, Max: 35},
		MaxDistanceKm: 50,
	}
}

func TestProfileValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Profile)
		wantErr error
	}{
		{
			name:   "valid profile",
			mutate: func(*Profile) {},
		},
		{
			name:    "empty ID",
			mutate:  func(p *Profile) { p.ID = "" },
			wantErr: ErrProfileIDEmpty,
		},
		{
			name:    "underage",
			mutate:  func(p *Profile) { p.Age = 17 },
			wantErr: ErrProfileAgeInvalid,
		},
		{
			name:    "implausible age",
			mutate:  func(p *Profile) { p.Age = 121 },
			wantErr: ErrProfileAgeInvalid,
		},
		{
			name:    "inverted age range",
			mutate:  func(p *Profile) { p.PreferredAges = AgeRange{Min: 35, Max: 25} },
			wantErr: ErrProfileAgeRangeInvalid,
		},
		{
			name:    "underage range minimum",
			mutate:  func(p *Profile) { p.PreferredAges = AgeRange{Min: 16, Max: 25} },
			wantErr: ErrProfileAgeRangeInvalid,
		},
		{
			name:    "non-positive max distance",
			mutate:  func(p *Profile) { p.MaxDistanceKm = 0 },
			wantErr: ErrProfileMaxDistanceInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile := validProfile()
			tt.mutate(profile)

			err := profile.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestAgeRange(t *testing.T) {
	r := AgeRange{Min: 25, Max: 35}

	assert.Equal(t, 10, r.Span())
	assert.True(t, r.Contains(25))
	assert.True(t, r.Contains(35))
	assert.False(t, r.Contains(24))
	assert.False(t, r.Contains(36))
}
