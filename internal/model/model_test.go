package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormattedDuration(t *testing.T) {
	tests := []struct {
		seconds uint32
		want    string
	}{
		{0, "0:00"},
		{7, "0:07"},
		{60, "1:00"},
		{247, "4:07"},
		{600, "10:00"},
		{3671, "61:11"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Track{Duration: tt.seconds}.FormattedDuration())
	}
}

func TestValidShowStatus(t *testing.T) {
	for _, s := range ShowStatuses {
		assert.True(t, ValidShowStatus(s), "status=%q", s)
	}
	for _, s := range []string{"", "ON-SALE", "postponed", "on sale"} {
		assert.False(t, ValidShowStatus(s), "status=%q", s)
	}
}
