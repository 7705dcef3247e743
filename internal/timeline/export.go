package timeline

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"os"
	"strconv"

	"github.com/possn/stress-strain-vni/internal/scenario"
)

var csvHeader = []string{"time", "phase", "crf", "tidal_volume", "strain", "rupture"}

func WriteCSV(path string, rows []Row) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return EncodeCSV(file, rows)
}

func EncodeCSV(out io.Writer, rows []Row) error {
	w := csv.NewWriter(out)
	defer w.Flush()

	if err := w.Write(csvHeader); err != nil {
		return err
	}
	for _, r := range rows {
		record := []string{
			strconv.FormatFloat(r.T, 'f', 6, 64),
			r.Phase,
			strconv.FormatFloat(r.CRF, 'f', 6, 64),
			strconv.FormatFloat(r.VT, 'f', 6, 64),
			strconv.FormatFloat(r.Strain, 'f', 6, 64),
			strconv.FormatBool(r.Rupture),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// ReadCSV loads a table previously written by WriteCSV. Malformed rows
// are skipped.
func ReadCSV(path string) ([]Row, error) {
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
	if len(records) < 2 {
		return []Row{}, nil
	}

	rows := make([]Row, 0, len(records)-1)
	for i := 1; i < len(records); i++ {
		record := records[i]
		if len(record) < 6 {
			continue
		}
		t, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			continue
		}
		crf, err := strconv.ParseFloat(record[2], 64)
		if err != nil {
			continue
		}
		vt, err := strconv.ParseFloat(record[3], 64)
		if err != nil {
			continue
		}
		strain, err := strconv.ParseFloat(record[4], 64)
		if err != nil {
			continue
		}
		rupture, err := strconv.ParseBool(record[5])
		if err != nil {
			continue
		}
		rows = append(rows, Row{
			T:       t,
			Phase:   record[1],
			CRF:     crf,
			VT:      vt,
			Strain:  strain,
			Rupture: rupture,
		})
	}
	return rows, nil
}

type ExportData struct {
	Scenario   string  `json:"scenario"`
	Duration   float64 `json:"duration"`
	FPS        int     `json:"fps"`
	Samples    int     `json:"samples"`
	SafeStrain float64 `json:"safe_strain"`
	Rows       []Row   `json:"rows"`
}

func BuildExport(name string, sc scenario.Scenario, fps int, rows []Row) ExportData {
	return ExportData{
		Scenario:   name,
		Duration:   sc.Duration(),
		FPS:        fps,
		Samples:    len(rows),
		SafeStrain: sc.SafeStrain,
		Rows:       rows,
	}
}

func WriteJSON(path string, data ExportData) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return EncodeJSON(file, data)
}

func EncodeJSON(out io.Writer, data ExportData) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
