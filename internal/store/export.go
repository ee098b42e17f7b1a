package store

import (
	"encoding/json"
	"io"
	"os"

	"github.com/yongdeokkim7/rodsim/internal/sim"
)

type ExportData struct {
	Scenario   string             `json:"scenario"`
	Integrator string             `json:"integrator"`
	Dt         float64            `json:"dt"`
	Duration   float64            `json:"duration"`
	Steps      int                `json:"steps"`
	Times      []float64          `json:"times"`
	Probes     [][][3]float64     `json:"probes"`
	Metrics    map[string]float64 `json:"metrics"`
}

func exportData(scenario, integrator string, dt, duration float64, result *sim.Result) ExportData {
	data := ExportData{
		Scenario:   scenario,
		Integrator: integrator,
		Dt:         dt,
		Duration:   duration,
		Steps:      len(result.Times),
		Times:      result.Times,
		Probes:     make([][][3]float64, len(result.Probes)),
		Metrics:    result.Metrics,
	}
	for i, step := range result.Probes {
		row := make([][3]float64, len(step))
		for j, p := range step {
			row[j] = p
		}
		data.Probes[i] = row
	}
	return data
}

func ExportJSON(path, scenario, integrator string, dt, duration float64, result *sim.Result) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return writeExport(file, scenario, integrator, dt, duration, result)
}

func ExportJSONStdout(scenario, integrator string, dt, duration float64, result *sim.Result) error {
	return writeExport(os.Stdout, scenario, integrator, dt, duration, result)
}

func writeExport(w io.Writer, scenario, integrator string, dt, duration float64, result *sim.Result) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(exportData(scenario, integrator, dt, duration, result))
}
