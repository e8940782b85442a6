// Package dataset loads a precomputed simulation export from a run
// directory. The four inputs are time-aligned: mass.csv and valves.csv
// share the downsampled frame schedule row for row, geometry.csv is
// static per-valve spans, events.csv is the sparse rupture catalog.
package dataset

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/quakeviz/quakeviz/internal/anim"
)

const (
	metaFile     = "metadata.json"
	massFile     = "mass.csv"
	valvesFile   = "valves.csv"
	geometryFile = "geometry.csv"
	eventsFile   = "events.csv"
)

// Metadata mirrors the exporter's run header.
type Metadata struct {
	ID         string    `json:"id"`
	Timestamp  time.Time `json:"timestamp"`
	GridSize   int       `json:"grid_size"`
	Dx         float64   `json:"dx"`
	SampleStep float64   `json:"sample_step"`
	MassScale  float64   `json:"mass_scale"`
}

// Dataset is the loaded, validated run. All slices are read-only after
// Load; the animator owns its own mutable valve/event state built from
// Valves and Events.
type Dataset struct {
	Dir    string
	Meta   Metadata
	Times  []float64
	Mass   [][]float64
	Bitmap [][]bool

	geometry [][2]int // start, width per valve
	Events   []anim.Event
}

// Load reads a run directory and runs the startup consistency checks:
// mass and bitmap row counts must agree, and the bitmap's columns must
// match the geometry's valve count. Malformed shapes are fatal here,
// never mid-run.
func Load(dir string) (*Dataset, error) {
	ds := &Dataset{Dir: dir}

	if err := ds.loadMeta(); err != nil {
		return nil, fmt.Errorf("dataset: %w", err)
	}
	if err := ds.loadMass(); err != nil {
		return nil, fmt.Errorf("dataset: %w", err)
	}
	if err := ds.loadBitmap(); err != nil {
		return nil, fmt.Errorf("dataset: %w", err)
	}
	if err := ds.loadGeometry(); err != nil {
		return nil, fmt.Errorf("dataset: %w", err)
	}
	if err := ds.loadEvents(); err != nil {
		return nil, fmt.Errorf("dataset: %w", err)
	}

	if len(ds.Mass) == 0 {
		return nil, fmt.Errorf("%w: run has no data rows", anim.ErrShapeMismatch)
	}
	if len(ds.Mass) != len(ds.Bitmap) {
		return nil, fmt.Errorf("%w: %d mass rows, %d bitmap rows", anim.ErrShapeMismatch, len(ds.Mass), len(ds.Bitmap))
	}
	if len(ds.Bitmap[0]) != len(ds.geometry) {
		return nil, fmt.Errorf("%w: %d bitmap columns, %d valves in geometry", anim.ErrShapeMismatch, len(ds.Bitmap[0]), len(ds.geometry))
	}
	if ds.Meta.GridSize > 0 && len(ds.Mass[0]) != ds.Meta.GridSize {
		return nil, fmt.Errorf("%w: %d mass columns, grid size %d", anim.ErrShapeMismatch, len(ds.Mass[0]), ds.Meta.GridSize)
	}

	return ds, nil
}

// Valves builds fresh closed valve state from the static geometry.
func (ds *Dataset) Valves() []anim.Valve {
	valves := make([]anim.Valve, len(ds.geometry))
	for i, g := range ds.geometry {
		valves[i] = anim.NewValve(g[0], g[1])
	}
	return valves
}

// ValveCount returns the number of physical valves.
func (ds *Dataset) ValveCount() int { return len(ds.geometry) }

// Steps returns the number of sampled time steps.
func (ds *Dataset) Steps() int { return len(ds.Mass) }

// TimeRange returns the first and last sampled times.
func (ds *Dataset) TimeRange() (float64, float64) {
	if len(ds.Times) == 0 {
		return 0, 0
	}
	return ds.Times[0], ds.Times[len(ds.Times)-1]
}

// MassMax returns the largest single-cell mass in the run, used to fix
// render axes up front.
func (ds *Dataset) MassMax() float64 {
	max := 0.0
	for _, row := range ds.Mass {
		for _, v := range row {
			if v > max {
				max = v
			}
		}
	}
	return max
}

// TotalMass sums the mass field per step, for the timeline and
// spectrum views.
func (ds *Dataset) TotalMass() []float64 {
	totals := make([]float64, len(ds.Mass))
	for i, row := range ds.Mass {
		sum := 0.0
		for _, v := range row {
			sum += v
		}
		totals[i] = sum
	}
	return totals
}

func (ds *Dataset) loadMeta() error {
	data, err := os.ReadFile(filepath.Join(ds.Dir, metaFile))
	if err != nil {
		return err
	}
	return json.Unmarshal(data, &ds.Meta)
}

func (ds *Dataset) loadMass() error {
	records, err := readCSV(filepath.Join(ds.Dir, massFile))
	if err != nil {
		return err
	}
	ds.Times = make([]float64, 0, len(records))
	ds.Mass = make([][]float64, 0, len(records))

	for _, record := range records {
		if len(record) < 2 {
			return fmt.Errorf("%w: mass row needs time and at least one cell", anim.ErrShapeMismatch)
		}
		t, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			return fmt.Errorf("bad mass time %q: %w", record[0], err)
		}
		row := make([]float64, len(record)-1)
		for j, field := range record[1:] {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return fmt.Errorf("bad mass value %q: %w", field, err)
			}
			row[j] = v
		}
		ds.Times = append(ds.Times, t)
		ds.Mass = append(ds.Mass, row)
	}
	return nil
}

func (ds *Dataset) loadBitmap() error {
	records, err := readCSV(filepath.Join(ds.Dir, valvesFile))
	if err != nil {
		return err
	}
	ds.Bitmap = make([][]bool, 0, len(records))
	for _, record := range records {
		if len(record) < 2 {
			return fmt.Errorf("%w: valve row needs time and at least one column", anim.ErrShapeMismatch)
		}
		row := make([]bool, len(record)-1)
		for j, field := range record[1:] {
			row[j] = field == "1"
		}
		ds.Bitmap = append(ds.Bitmap, row)
	}
	return nil
}

func (ds *Dataset) loadGeometry() error {
	records, err := readCSV(filepath.Join(ds.Dir, geometryFile))
	if err != nil {
		return err
	}
	ds.geometry = make([][2]int, 0, len(records))
	for _, record := range records {
		if len(record) < 2 {
			return fmt.Errorf("%w: geometry row needs start and width", anim.ErrShapeMismatch)
		}
		start, err := strconv.Atoi(record[0])
		if err != nil {
			return fmt.Errorf("bad valve start %q: %w", record[0], err)
		}
		width, err := strconv.Atoi(record[1])
		if err != nil {
			return fmt.Errorf("bad valve width %q: %w", record[1], err)
		}
		ds.geometry = append(ds.geometry, [2]int{start, width})
	}
	return nil
}

func (ds *Dataset) loadEvents() error {
	records, err := readCSV(filepath.Join(ds.Dir, eventsFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil // a quiet run has no catalog
		}
		return err
	}
	ds.Events = make([]anim.Event, 0, len(records))
	for _, record := range records {
		if len(record) < 2 {
			return fmt.Errorf("%w: event row needs time and position", anim.ErrShapeMismatch)
		}
		t, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			return fmt.Errorf("bad event time %q: %w", record[0], err)
		}
		x, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			return fmt.Errorf("bad event position %q: %w", record[1], err)
		}
		ds.Events = append(ds.Events, anim.Event{T: t, X: x})
	}
	return nil
}

// readCSV returns all data rows, skipping the header.
func readCSV(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 1 {
		return nil, nil
	}
	return records[1:], nil
}
