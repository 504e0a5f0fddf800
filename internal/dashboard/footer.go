package dashboard

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/steviee/factorio-dash/internal/factorio"
	"golang.org/x/sync/errgroup"
)

// InfoSource provides the seed and game time.
type InfoSource interface {
	Seed(ctx context.Context) (factorio.Seed, error)
	Uptime(ctx context.Context) (*factorio.Uptime, error)
}

// NewFooterPoller creates the poller for the server info footer.
func NewFooterPoller(src InfoSource, region Region, renderer Renderer, opts Options) *Poller {
	if opts.Interval == 0 {
		opts.Interval = DefaultInfoInterval
	}

	fetch := func(ctx context.Context) (string, error) {
		info, err := FetchFooterInfo(ctx, src)
		if err != nil {
			return "", err
		}
		return renderer.Footer(info), nil
	}

	return newPoller("server-info", ServerInfoErrorMessage, region, renderer, fetch, opts)
}

// FetchFooterInfo requests seed and uptime in parallel. Either failure
// fails the whole call.
func FetchFooterInfo(ctx context.Context, src InfoSource) (FooterInfo, error) {
	var (
		seed   factorio.Seed
		uptime *factorio.Uptime
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s, err := src.Seed(gctx)
		if err != nil {
			return fmt.Errorf("seed: %w", err)
		}
		seed = s
		return nil
	})
	g.Go(func() error {
		u, err := src.Uptime(gctx)
		if err != nil {
			return fmt.Errorf("uptime: %w", err)
		}
		uptime = u
		return nil
	})

	if err := g.Wait(); err != nil {
		return FooterInfo{}, err
	}

	info := FooterInfo{Seed: seed}
	if uptime != nil {
		info.Uptime = FormatUptime(*uptime)
	}
	return info, nil
}

// FormatUptime joins the non-zero components as "<n>h <n>m <n>s ",
// each followed by a space. A zero uptime yields "".
func FormatUptime(u factorio.Uptime) string {
	var b strings.Builder
	for _, part := range []struct {
		value int
		unit  string
	}{
		{u.Hours, "h"},
		{u.Minutes, "m"},
		{u.Seconds, "s"},
	} {
		if part.value == 0 {
			continue
		}
		b.WriteString(strconv.Itoa(part.value))
		b.WriteString(part.unit)
		b.WriteString(" ")
	}
	return b.String()
}
