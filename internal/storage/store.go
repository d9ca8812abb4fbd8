package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/BonnyAD9/stick-ants/internal/sim"
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
	ID         string             `json:"id"`
	Timestamp  time.Time          `json:"timestamp"`
	Count      int                `json:"count"`
	MollyIndex int                `json:"molly_index"`
	Step       float64            `json:"step"`
	Placement  string             `json:"placement"`
	Seed       int64              `json:"seed"`
	Ticks      int                `json:"ticks"`
	Metrics    map[string]float64 `json:"metrics"`
}

// Save writes one run as metadata.json plus a per-tick history.csv with
// columns tick, time, count, molly (molly empty once it has left the rod).
func (s *Store) Save(count, mollyIndex int, step float64, placement string, seed int64, result *sim.Result) (string, error) {
	runID := fmt.Sprintf("%s_%d", placement, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:         runID,
		Timestamp:  time.Now(),
		Count:      count,
		MollyIndex: mollyIndex,
		Step:       step,
		Placement:  placement,
		Seed:       seed,
		Ticks:      result.Ticks,
		Metrics:    result.Metrics,
	}

	metaPath := filepath.Join(runDir, "metadata.json")
	metaFile, err := os.Create(metaPath)
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvPath := filepath.Join(runDir, "history.csv")
	csvFile, err := os.Create(csvPath)
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if err := w.Write([]string{"tick", "time", "count", "molly"}); err != nil {
		return "", err
	}

	for i := range result.Times {
		molly := ""
		if i < len(result.Molly) && !math.IsNaN(result.Molly[i]) {
			molly = strconv.FormatFloat(result.Molly[i], 'f', 6, 64)
		}
		row := []string{
			strconv.Itoa(i),
			strconv.FormatFloat(result.Times[i], 'f', 6, 64),
			strconv.Itoa(result.Counts[i]),
			molly,
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return runID, nil
}

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

		metaPath := filepath.Join(s.baseDir, entry.Name(), "metadata.json")
		data, err := os.ReadFile(metaPath)
		if err != nil {
			continue
		}

		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}

		runs = append(runs, meta)
	}

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	metaPath := filepath.Join(s.baseDir, runID, "metadata.json")
	data, err := os.ReadFile(metaPath)
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// CopyHistory streams a run's raw history.csv to w.
func (s *Store) CopyHistory(runID string, w io.Writer) error {
	csvPath := filepath.Join(s.baseDir, runID, "history.csv")
	file, err := os.Open(csvPath)
	if err != nil {
		return err
	}
	defer file.Close()

	_, err = io.Copy(w, file)
	return err
}

// LoadHistory reads a run's per-tick history back. Molly positions are NaN
// for ticks where Molly was already gone.
func (s *Store) LoadHistory(runID string) (times []float64, counts []int, molly []float64, err error) {
	csvPath := filepath.Join(s.baseDir, runID, "history.csv")
	file, err := os.Open(csvPath)
	if err != nil {
		return nil, nil, nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, nil, err
	}

	for i := 1; i < len(records); i++ {
		record := records[i]
		if len(record) < 4 {
			continue
		}

		t, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			continue
		}
		n, err := strconv.Atoi(record[2])
		if err != nil {
			continue
		}

		m := math.NaN()
		if record[3] != "" {
			if v, err := strconv.ParseFloat(record[3], 64); err == nil {
				m = v
			}
		}

		times = append(times, t)
		counts = append(counts, n)
		molly = append(molly, m)
	}

	return times, counts, molly, nil
}
