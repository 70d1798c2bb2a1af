package subarray

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"ndops/internal/band"
	"ndops/internal/katcp"
)

// Endpoint locates one antenna's digitiser control port.
type Endpoint struct {
	Name string
	Addr string
}

// Live is a subarray backed by KATCP connections to real digitisers and
// a sensor endpoint for the sub-band selection.
type Live struct {
	id       string
	antennas []Antenna
	sensor   *katcp.Client
	clients  []*katcp.Client
}

// digitiserClient adapts a katcp.Client to the Digitiser interface.
type digitiserClient struct {
	c *katcp.Client
}

// NoiseSource issues the dig-noise-source request. Arguments are the
// epoch timestamp, the on fraction, and the cycle length in seconds.
func (d digitiserClient) NoiseSource(ctx context.Context, timestamp, onFrac, cycleLen float64) (katcp.Message, []katcp.Message, error) {
	return d.c.Request(ctx, "dig-noise-source",
		strconv.FormatFloat(timestamp, 'f', -1, 64),
		strconv.FormatFloat(onFrac, 'f', -1, 64),
		strconv.FormatFloat(cycleLen, 'f', -1, 64))
}

// Connect dials every digitiser endpoint plus the sensor endpoint and
// returns the live subarray. Connection attempts back off and retry;
// a digitiser that never answers fails construction, because operating
// on a subset silently would defeat synchronized triggering.
func Connect(ctx context.Context, id, sensorAddr string, endpoints []Endpoint) (*Live, error) {
	l := &Live{id: id}
	sensor, err := katcp.Dial(ctx, sensorAddr, 4)
	if err != nil {
		return nil, fmt.Errorf("subarray %s: sensor endpoint: %w", id, err)
	}
	l.sensor = sensor
	l.clients = append(l.clients, sensor)

	for _, ep := range endpoints {
		c, err := katcp.Dial(ctx, ep.Addr, 4)
		if err != nil {
			l.Close()
			return nil, fmt.Errorf("subarray %s: antenna %s: %w", id, ep.Name, err)
		}
		l.clients = append(l.clients, c)
		l.antennas = append(l.antennas, Antenna{Name: ep.Name, Dig: digitiserClient{c: c}})
	}
	sort.Slice(l.antennas, func(i, j int) bool { return l.antennas[i].Name < l.antennas[j].Name })
	return l, nil
}

func (l *Live) ID() string          { return l.id }
func (l *Live) Antennas() []Antenna { return l.antennas }
func (l *Live) Simulated() bool     { return false }

// SubBand queries the sub-band sensor. The reply carries the band
// identifier as its second argument.
func (l *Live) SubBand() (band.Band, error) {
	reply, _, err := l.sensor.Request(context.Background(), "sensor-value", "sub-band")
	if err != nil {
		return "", fmt.Errorf("subarray %s: query sub-band: %w", l.id, err)
	}
	if !reply.OK() || len(reply.Arguments) < 2 {
		return "", fmt.Errorf("subarray %s: unusable sub-band reply %v", l.id, reply.Arguments)
	}
	return band.Band(reply.Arguments[1]), nil
}

// Close drops all control connections.
func (l *Live) Close() {
	for _, c := range l.clients {
		c.Close()
	}
}
