package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/san-kum/thermosim/internal/dynamo"
	"github.com/san-kum/thermosim/internal/experiment"
	"github.com/san-kum/thermosim/internal/physics"
)

const (
	metadataFile   = "metadata.json"
	trajectoryFile = "trajectory.csv"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID             string             `json:"id"`
	Method         string             `json:"method"`
	Timestamp      time.Time          `json:"timestamp"`
	Params         physics.Params     `json:"params"`
	InitialTemp    float64            `json:"initial_temp"`
	Start          float64            `json:"start"`
	End            float64            `json:"end"`
	Steps          int                `json:"steps"`
	Samples        int                `json:"samples"`
	Period         float64            `json:"period"`
	PeriodDetected bool               `json:"period_detected"`
	ActionTime     float64            `json:"action_time"`
	Error          string             `json:"error,omitempty"`
	Summary        map[string]float64 `json:"summary,omitempty"`
	Events         []physics.Event    `json:"events,omitempty"`
}

// NewMetadata describes res as produced by a run of p on a room with params.
func NewMetadata(params physics.Params, p dynamo.Problem, res experiment.Result) RunMetadata {
	meta := RunMetadata{
		Method:         res.Method,
		Timestamp:      time.Now(),
		Params:         params,
		InitialTemp:    p.Initial,
		Start:          p.Start,
		End:            p.End,
		Steps:          p.Steps,
		Samples:        len(res.Trajectory),
		Period:         res.Period,
		PeriodDetected: res.PeriodDetected,
		ActionTime:     res.ActionTime,
		Summary:        res.Summary,
		Events:         res.Events,
	}
	if res.Err != nil {
		meta.Error = res.Err.Error()
	}
	return meta
}

// Save writes a run directory holding metadata.json and trajectory.csv and
// returns its ID.
func (s *Store) Save(params physics.Params, p dynamo.Problem, res experiment.Result) (string, error) {
	meta := NewMetadata(params, p, res)
	meta.ID = fmt.Sprintf("%s_%s", res.Method, uuid.NewString()[:8])
	runDir := filepath.Join(s.baseDir, meta.ID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	err := writeFile(filepath.Join(runDir, metadataFile), func(w io.Writer) error {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(meta)
	})
	if err == nil {
		err = writeFile(filepath.Join(runDir, trajectoryFile), func(w io.Writer) error {
			return WriteCSV(w, res.Trajectory)
		})
	}
	if err != nil {
		return "", errors.Join(err, os.RemoveAll(runDir))
	}
	return meta.ID, nil
}

// writeFile creates path, fills it with write and reports the first error,
// including one surfacing at close.
func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// List returns the readable runs, oldest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}
	return &meta, nil
}

func (s *Store) LoadTrajectory(runID string) (dynamo.Trajectory, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, trajectoryFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	tr, err := ReadCSV(file)
	if err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}
	return tr, nil
}

// WriteCSV writes a time,temperature table with a header row.
func WriteCSV(w io.Writer, tr dynamo.Trajectory) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"time", "temperature"}); err != nil {
		return err
	}
	for _, s := range tr {
		row := []string{
			strconv.FormatFloat(s.T, 'g', -1, 64),
			strconv.FormatFloat(s.Y, 'g', -1, 64),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

var errMalformedRow = errors.New("malformed trajectory row")

func ReadCSV(r io.Reader) (dynamo.Trajectory, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 2

	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return dynamo.Trajectory{}, nil
	}

	tr := dynamo.NewTrajectory(len(records) - 1)
	for i, record := range records[1:] {
		t, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			return nil, fmt.Errorf("%w %d: %v", errMalformedRow, i+1, err)
		}
		y, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			return nil, fmt.Errorf("%w %d: %v", errMalformedRow, i+1, err)
		}
		tr = append(tr, dynamo.Sample{T: t, Y: y})
	}
	return tr, nil
}
