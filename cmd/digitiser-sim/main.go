// digitiser-sim serves a fleet of fake digitiser control endpoints for
// exercising noise-diode operations without telescope hardware. Each
// antenna answers dig-noise-source requests with a slightly jittered
// activation time, and every endpoint reports the configured sub-band.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/grandcat/zeroconf"

	"ndops/internal/katcp"
)

func main() {
	count := flag.Int("count", 4, "Number of fake digitisers to serve")
	host := flag.String("host", "127.0.0.1", "Host to bind the control endpoints on")
	subBand := flag.String("band", "l", "Sub-band the sensor endpoint reports")
	jitter := flag.Float64("jitter", 0.05, "Max random offset in seconds applied to acknowledged timestamps")
	failRate := flag.Float64("fail-rate", 0, "Probability that a request fails outright")
	announce := flag.Bool("announce", false, "Announce endpoints via mDNS (_katcp._tcp)")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sensor := katcp.NewServer(sensorHandler(*subBand))
	sensorAddr, err := sensor.Listen(ctx, *host+":0")
	if err != nil {
		log.Fatalf("sensor listen failed: %v", err)
	}
	defer sensor.Close()
	fmt.Printf("sensor_addr: %s\n", sensorAddr)

	fmt.Println("antennas:")
	for i := 0; i < *count; i++ {
		name := fmt.Sprintf("m%03d", i)
		srv := katcp.NewServer(digitiserHandler(name, *subBand, *jitter, *failRate))
		addr, err := srv.Listen(ctx, *host+":0")
		if err != nil {
			log.Fatalf("digitiser %s listen failed: %v", name, err)
		}
		defer srv.Close()
		fmt.Printf("  - name: %s\n    addr: %s\n", name, addr)

		if *announce {
			mdns, err := register(name, addr)
			if err != nil {
				log.Fatalf("mdns announce for %s failed: %v", name, err)
			}
			defer mdns.Shutdown()
		}
	}

	<-ctx.Done()
}

// sensorHandler answers sub-band sensor queries the way the subarray
// sensor proxy does.
func sensorHandler(subBand string) katcp.Handler {
	return func(req katcp.Message) (katcp.Message, []katcp.Message) {
		if req.Name == "sensor-value" && len(req.Arguments) > 0 && req.Arguments[0] == "sub-band" {
			return katcp.NewReply(req.Name, katcp.StatusOK, subBand), nil
		}
		return katcp.NewReply(req.Name, katcp.StatusFail, "unknown request"), nil
	}
}

func digitiserHandler(name, subBand string, jitter, failRate float64) katcp.Handler {
	return func(req katcp.Message) (katcp.Message, []katcp.Message) {
		switch req.Name {
		case "sensor-value":
			if len(req.Arguments) > 0 && req.Arguments[0] == "sub-band" {
				return katcp.NewReply(req.Name, katcp.StatusOK, subBand), nil
			}
			return katcp.NewReply(req.Name, katcp.StatusFail, "unknown sensor"), nil
		case "dig-noise-source":
			return noiseSourceReply(name, req, jitter, failRate)
		}
		return katcp.NewReply(req.Name, katcp.StatusFail, "unknown request"), nil
	}
}

// noiseSourceReply acknowledges a noise-source switch, echoing the
// requested settings with the activation timestamp nudged by jitter.
func noiseSourceReply(name string, req katcp.Message, jitter, failRate float64) (katcp.Message, []katcp.Message) {
	if failRate > 0 && rand.Float64() < failRate {
		return katcp.NewReply(req.Name, katcp.StatusFail, "injected fault"), nil
	}
	if len(req.Arguments) != 3 {
		return katcp.NewReply(req.Name, katcp.StatusInvalid, "expected timestamp on-fraction cycle-length"), nil
	}
	ts, err := strconv.ParseFloat(req.Arguments[0], 64)
	if err != nil {
		return katcp.NewReply(req.Name, katcp.StatusInvalid, "bad timestamp"), nil
	}
	onFrac, err := strconv.ParseFloat(req.Arguments[1], 64)
	if err != nil || onFrac < 0 || onFrac > 1 {
		return katcp.NewReply(req.Name, katcp.StatusInvalid, "on-fraction out of range"), nil
	}
	if _, err := strconv.ParseFloat(req.Arguments[2], 64); err != nil {
		return katcp.NewReply(req.Name, katcp.StatusInvalid, "bad cycle length"), nil
	}

	actual := ts + jitter*rand.Float64()
	inform := katcp.NewInform("log", "info", name, "noise source armed")
	reply := katcp.NewReply(req.Name, katcp.StatusOK,
		strconv.FormatFloat(actual, 'f', -1, 64),
		req.Arguments[1],
		req.Arguments[2])
	return reply, []katcp.Message{inform}
}

func register(name, addr string) (*zeroconf.Server, error) {
	_, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return nil, err
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, err
	}
	return zeroconf.Register(name, "_katcp._tcp", "local.", port, []string{"role=digitiser"}, nil)
}
