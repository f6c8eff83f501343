// Command floodnet-report queries depth readings for the deployments inside
// a geographic boundary over a time window and writes them to CSV. The
// defaults reproduce the Hurricane Ida survey of Brooklyn sensors.
package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/floodnet-nyc/floodnet-go/floodnet"
	"github.com/floodnet-nyc/floodnet-go/internal/logging"
	"github.com/floodnet-nyc/floodnet-go/snapshot"
	"github.com/floodnet-nyc/floodnet-go/spatial"
)

const (
	// Hurricane Ida hit NYC overnight on Sep 1-2, 2021.
	defaultStart = "2021-09-01T00:00:00Z"
	defaultEnd   = "2021-09-02T23:59:00Z"
	// Brooklyn, roughly.
	defaultBBox = "-74.042,40.570,-73.856,40.739"
)

func main() {
	startArg := flag.String("start", defaultStart, "Window start (RFC 3339)")
	endArg := flag.String("end", defaultEnd, "Window end (RFC 3339)")
	bboxArg := flag.String("bbox", defaultBBox, "Bounding box as minLon,minLat,maxLon,maxLat")
	boundaryArg := flag.String("boundary", "", "Shapefile boundary; overrides -bbox")
	outArg := flag.String("out", "floodnet-report.csv", "CSV output path")
	snapshotArg := flag.String("snapshot", "", "Optional SQLite path to save the deployment snapshot")
	forceArg := flag.Bool("force-refresh", false, "Bypass the deployment cache")
	verboseArg := flag.Bool("v", false, "Verbose logging")
	flag.Parse()

	// A .env alongside the binary may override the API root.
	_ = godotenv.Load()

	log := logging.New(*verboseArg)
	defer func() { _ = log.Sync() }()

	if err := run(log, *startArg, *endArg, *bboxArg, *boundaryArg, *outArg, *snapshotArg, *forceArg); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}

func run(log *zap.SugaredLogger, startArg, endArg, bboxArg, boundaryArg, outArg, snapshotArg string, forceRefresh bool) error {
	start, err := time.Parse(time.RFC3339, startArg)
	if err != nil {
		return fmt.Errorf("parsing -start: %w", err)
	}
	end, err := time.Parse(time.RFC3339, endArg)
	if err != nil {
		return fmt.Errorf("parsing -end: %w", err)
	}

	var boundary spatial.Geometry
	if boundaryArg != "" {
		boundary, err = spatial.LoadBoundary(boundaryArg)
		if err != nil {
			return err
		}
	} else {
		boundary, err = parseBBox(bboxArg)
		if err != nil {
			return err
		}
	}

	core := floodnet.NewClient()
	core.SetLogger(log)
	if baseURL := os.Getenv("FLOODNET_BASE_URL"); baseURL != "" {
		core.SetBaseURL(baseURL)
	}
	client := spatial.NewClient(core)

	ctx := context.Background()

	if forceRefresh {
		if _, err := client.ListDeployments(ctx, true); err != nil {
			return err
		}
	}

	deployments, err := client.DeploymentsWithin(ctx, boundary)
	if err != nil {
		return err
	}
	log.Infow("deployments within boundary", "count", len(deployments))

	if snapshotArg != "" {
		store, err := snapshot.Open(snapshotArg)
		if err != nil {
			return err
		}
		defer store.Close()
		if err := store.Save(deployments, time.Now()); err != nil {
			return err
		}
		log.Infow("saved deployment snapshot", "path", snapshotArg)
	}

	readings, err := client.DepthDataWithin(ctx, start, end, boundary)
	if err != nil {
		return err
	}
	log.Infow("retrieved depth readings", "count", len(readings))

	out, err := os.Create(outArg)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer out.Close()

	w := csv.NewWriter(out)
	if err := w.Write([]string{"deployment_id", "time", "depth_mm"}); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}
	for _, r := range readings {
		record := []string{
			r.DeploymentID,
			r.Time.UTC().Format(time.RFC3339),
			strconv.FormatFloat(r.DepthMM, 'f', 1, 64),
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("writing CSV record: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flushing CSV: %w", err)
	}

	log.Infow("wrote report", "path", outArg, "readings", len(readings))
	return nil
}

// parseBBox parses "minLon,minLat,maxLon,maxLat".
func parseBBox(s string) (spatial.BoundingBox, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return spatial.BoundingBox{}, fmt.Errorf("bbox must be minLon,minLat,maxLon,maxLat, got %q", s)
	}
	vals := make([]float64, 4)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return spatial.BoundingBox{}, fmt.Errorf("parsing bbox component %q: %w", p, err)
		}
		vals[i] = v
	}
	return spatial.NewBoundingBox(vals[0], vals[1], vals[2], vals[3]), nil
}
