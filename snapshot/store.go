// Package snapshot persists the last-fetched deployment collection in a
// SQLite database so tools can inspect the sensor network offline.
package snapshot

import (
	"database/sql"
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	_ "modernc.org/sqlite"

	"github.com/floodnet-nyc/floodnet-go/models"
)

// ErrNoSnapshot is returned by Load when nothing has been saved yet.
var ErrNoSnapshot = errors.New("snapshot: no deployment snapshot saved")

const schema = `
	CREATE TABLE IF NOT EXISTS deployments (
		deployment_id TEXT PRIMARY KEY,
		name TEXT,
		deploy_type TEXT,
		sensor_mount TEXT,
		mounted_over TEXT,
		sensor_status TEXT,
		image TEXT,
		date_deployed TEXT,
		date_down TEXT,
		longitude REAL NOT NULL,
		latitude REAL NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_deployments_position
		ON deployments(latitude, longitude);
	CREATE TABLE IF NOT EXISTS snapshot_meta (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		fetched_at TEXT NOT NULL
	);
`

// Store is a SQLite-backed snapshot of one deployment collection. Writes
// replace the collection wholesale, mirroring the client cache's semantics.
type Store struct {
	db *sql.DB
}

// Open opens the snapshot database at path, creating the schema if needed.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening snapshot database: %w", err)
	}
	// Set pragmas for performance
	_, _ = db.Exec("PRAGMA journal_mode=WAL")
	_, _ = db.Exec("PRAGMA synchronous=NORMAL")

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating snapshot schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save replaces the stored collection with the given deployments in a single
// transaction.
func (s *Store) Save(deployments []models.Deployment, fetchedAt time.Time) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning snapshot transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM deployments"); err != nil {
		return fmt.Errorf("clearing deployments: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO deployments (
			deployment_id, name, deploy_type, sensor_mount, mounted_over,
			sensor_status, image, date_deployed, date_down, longitude, latitude
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, d := range deployments {
		var dateDown any
		if d.DateDown != nil {
			dateDown = d.DateDown.UTC().Format(time.RFC3339)
		}
		_, err := stmt.Exec(
			d.DeploymentID, d.Name, d.DeployType, d.SensorMount, d.MountedOver,
			d.SensorStatus, d.Image, d.DateDeployed.UTC().Format(time.RFC3339),
			dateDown, d.Longitude, d.Latitude,
		)
		if err != nil {
			return fmt.Errorf("inserting deployment %s: %w", d.DeploymentID, err)
		}
	}

	_, err = tx.Exec(`
		INSERT INTO snapshot_meta (id, fetched_at) VALUES (1, ?)
		ON CONFLICT(id) DO UPDATE SET fetched_at = excluded.fetched_at
	`, fetchedAt.UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("recording fetch time: %w", err)
	}

	return tx.Commit()
}

// Load returns the stored deployments and the time they were fetched.
func (s *Store) Load() ([]models.Deployment, time.Time, error) {
	var fetchedAtStr string
	err := s.db.QueryRow("SELECT fetched_at FROM snapshot_meta WHERE id = 1").Scan(&fetchedAtStr)
	if err == sql.ErrNoRows {
		return nil, time.Time{}, ErrNoSnapshot
	}
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("reading snapshot metadata: %w", err)
	}
	fetchedAt, err := time.Parse(time.RFC3339, fetchedAtStr)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("parsing snapshot fetch time: %w", err)
	}

	rows, err := s.db.Query(`
		SELECT deployment_id, name, deploy_type, sensor_mount, mounted_over,
		       sensor_status, image, date_deployed, date_down, longitude, latitude
		FROM deployments
		ORDER BY deployment_id
	`)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("querying deployments: %w", err)
	}
	defer rows.Close()

	var deployments []models.Deployment
	for rows.Next() {
		var d models.Deployment
		var dateDeployed string
		var dateDown sql.NullString
		err := rows.Scan(
			&d.DeploymentID, &d.Name, &d.DeployType, &d.SensorMount, &d.MountedOver,
			&d.SensorStatus, &d.Image, &dateDeployed, &dateDown, &d.Longitude, &d.Latitude,
		)
		if err != nil {
			return nil, time.Time{}, fmt.Errorf("scanning deployment: %w", err)
		}

		if t, err := time.Parse(time.RFC3339, dateDeployed); err == nil {
			d.DateDeployed = t
		}
		if dateDown.Valid && dateDown.String != "" {
			if t, err := time.Parse(time.RFC3339, dateDown.String); err == nil {
				d.DateDown = &t
			}
		}
		d.Location = models.Location{
			Type:        "Point",
			Coordinates: []float64{d.Longitude, d.Latitude},
		}
		deployments = append(deployments, d)
	}
	if err := rows.Err(); err != nil {
		return nil, time.Time{}, fmt.Errorf("iterating deployments: %w", err)
	}

	return deployments, fetchedAt, nil
}

// DeploymentDistance pairs a stored deployment with its distance from a
// query point.
type DeploymentDistance struct {
	Deployment models.Deployment
	Kilometers float64
}

// Nearest returns the stored deployments within maxKm of the given point,
// closest first.
func (s *Store) Nearest(lat, lon, maxKm float64) ([]DeploymentDistance, error) {
	// Bounding-box prefilter before the exact distance check. One degree of
	// latitude is roughly 111 km; the margin keeps edge deployments in.
	latDelta := maxKm / 111.0 * 1.5
	lonDelta := maxKm / (111.0 * math.Cos(lat*math.Pi/180)) * 1.5

	rows, err := s.db.Query(`
		SELECT deployment_id, name, sensor_status, longitude, latitude
		FROM deployments
		WHERE latitude BETWEEN ? AND ?
		  AND longitude BETWEEN ? AND ?
	`, lat-latDelta, lat+latDelta, lon-lonDelta, lon+lonDelta)
	if err != nil {
		return nil, fmt.Errorf("querying deployments: %w", err)
	}
	defer rows.Close()

	var nearby []DeploymentDistance
	for rows.Next() {
		var d models.Deployment
		if err := rows.Scan(&d.DeploymentID, &d.Name, &d.SensorStatus, &d.Longitude, &d.Latitude); err != nil {
			continue
		}

		distance := haversineKm(lat, lon, d.Latitude, d.Longitude)
		if distance <= maxKm {
			nearby = append(nearby, DeploymentDistance{Deployment: d, Kilometers: distance})
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating deployments: %w", err)
	}

	sort.Slice(nearby, func(i, j int) bool {
		return nearby[i].Kilometers < nearby[j].Kilometers
	})
	return nearby, nil
}

// haversineKm calculates the great-circle distance in kilometers between two
// lat/lon points.
func haversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	const earthRadiusKm = 6371.0

	lat1Rad := lat1 * math.Pi / 180
	lat2Rad := lat2 * math.Pi / 180
	deltaLat := (lat2 - lat1) * math.Pi / 180
	deltaLon := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*
			math.Sin(deltaLon/2)*math.Sin(deltaLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}
