package plater

import (
	"encoding/csv"
	"io"
	"math"
	"strconv"
)

// WriteManifest writes the placement manifest CSV (spec §6):
// plate,part,posX(mm),posY(mm),rotation(deg), one row per PartInstance,
// with a 1-based plate index. This is caller-side per §6 — the core
// returns a Solution, and a caller chooses whether to emit this file —
// grounded on Request::writePlatesInfo.
func WriteManifest(w io.Writer, solution *Solution) error {
	out := csv.NewWriter(w)
	defer out.Flush()

	if err := out.Write([]string{"plate", "part", "posX", "posY", "rotation"}); err != nil {
		return err
	}

	for i, plate := range solution.Plates() {
		for _, inst := range plate.Instances() {
			row := []string{
				strconv.Itoa(i + 1),
				inst.Part().Filename(),
				strconv.FormatFloat(float64(inst.CenterX())/1000.0, 'f', -1, 64),
				strconv.FormatFloat(float64(inst.CenterY())/1000.0, 'f', -1, 64),
				strconv.FormatFloat(inst.AngleRadians()*180.0/math.Pi, 'f', -1, 64),
			}
			if err := out.Write(row); err != nil {
				return err
			}
		}
	}
	return out.Error()
}
