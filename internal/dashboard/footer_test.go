package dashboard

import (
	"context"
	"errors"
	"testing"

	"github.com/steviee/factorio-dash/internal/factorio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatUptime(t *testing.T) {
	tests := []struct {
		name   string
		uptime factorio.Uptime
		want   string
	}{
		{name: "empty", uptime: factorio.Uptime{}, want: ""},
		{name: "minutes only", uptime: factorio.Uptime{Hours: 0, Minutes: 5, Seconds: 0}, want: "5m "},
		{name: "all components", uptime: factorio.Uptime{Hours: 1, Minutes: 2, Seconds: 3}, want: "1h 2m 3s "},
		{name: "hours and seconds", uptime: factorio.Uptime{Hours: 12, Seconds: 9}, want: "12h 9s "},
		{name: "seconds only", uptime: factorio.Uptime{Seconds: 59}, want: "59s "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatUptime(tt.uptime))
		})
	}
}

func TestFetchFooterInfo(t *testing.T) {
	api := &fakeAPI{seed: "3793658566", uptime: &factorio.Uptime{Hours: 2, Minutes: 30}}

	info, err := FetchFooterInfo(context.Background(), api)
	require.NoError(t, err)

	assert.Equal(t, factorio.Seed("3793658566"), info.Seed)
	assert.Equal(t, "2h 30m ", info.Uptime)
}

func TestFooterPoller_AnyFailureReplacesWholeFooter(t *testing.T) {
	tests := []struct {
		name string
		api  *fakeAPI
	}{
		{
			name: "seed fails",
			api:  &fakeAPI{seedErr: errors.New("seed down"), uptime: &factorio.Uptime{Minutes: 5}},
		},
		{
			name: "uptime fails",
			api:  &fakeAPI{seed: "123", uptimeErr: errors.New("uptime down")},
		},
		{
			name: "both fail",
			api:  &fakeAPI{seedErr: errors.New("a"), uptimeErr: errors.New("b")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			region := &recordingRegion{}
			poller := NewFooterPoller(tt.api, region, plainRenderer{}, Options{})

			require.Error(t, poller.Refresh(context.Background()))

			writes := region.all()
			require.Len(t, writes, 1)
			assert.Equal(t, "ERR "+ServerInfoErrorMessage, writes[0])
			assert.NotContains(t, writes[0], "123")
			assert.NotContains(t, writes[0], "5m")
		})
	}
}

func TestFooterPoller_Success(t *testing.T) {
	region := &recordingRegion{}
	api := &fakeAPI{seed: "42", uptime: &factorio.Uptime{}}
	poller := NewFooterPoller(api, region, plainRenderer{}, Options{})

	require.NoError(t, poller.Refresh(context.Background()))
	assert.Equal(t, "Seed: 42 | Game Time: ", region.last())
}
