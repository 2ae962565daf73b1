package lang

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		code string
		want string
	}{
		{"en", "eng"},
		{"fr", "fra"},
		{"french", "fra"},
		{"de", "deu"},
		{"ja", "jpn"},
		{"ko", "kor"},
		{"zh", "chi_sim"},
		{"ch", "chi_sim"},
		{"zh-tw", "chi_tra"},
		{"chinese_cht", "chi_tra"},
		{"cyrillic", "rus"},
		// Native engine codes pass through unchanged.
		{"eng", "eng"},
		{"chi_sim", "chi_sim"},
		{"deu", "deu"},
		// Unmapped codes pass through unchanged.
		{"xyz", "xyz"},
		{"nld", "nld"},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.want, Resolve(tt.code))
		})
	}
}

func TestResolveNormalizesInput(t *testing.T) {
	assert.Equal(t, "eng", Resolve("EN"))
	assert.Equal(t, "fra", Resolve("  French "))
	assert.Equal(t, "", Resolve(""))
	assert.Equal(t, "", Resolve("   "))
}
