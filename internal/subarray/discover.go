package subarray

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/grandcat/zeroconf"
)

// Discover browses mDNS for digitiser control endpoints advertising
// _katcp._tcp and returns them as dialable endpoints. The advertised
// instance name is taken as the antenna name.
func Discover(ctx context.Context, timeout time.Duration) ([]Endpoint, error) {
	resolver, err := zeroconf.NewResolver(nil)
	if err != nil {
		return nil, fmt.Errorf("mdns resolver: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	entries := make(chan *zeroconf.ServiceEntry)
	byName := make(map[string]Endpoint)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			select {
			case e, ok := <-entries:
				if !ok {
					return
				}
				if e == nil || len(e.AddrIPv4) == 0 {
					continue
				}
				byName[e.Instance] = Endpoint{
					Name: e.Instance,
					Addr: fmt.Sprintf("%s:%d", e.AddrIPv4[0], e.Port),
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	if err := resolver.Browse(ctx, "_katcp._tcp", "local.", entries); err != nil {
		return nil, fmt.Errorf("mdns browse: %w", err)
	}
	<-done

	out := make([]Endpoint, 0, len(byName))
	for _, ep := range byName {
		out = append(out, ep)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}
