package report

import (
	"encoding/json"
	"os"

	diagerrors "github.com/mbrocato/it-diagnostics-toolkit/internal/errors"
)

// WriteJSON renders the report as pretty-printed JSON at path. A write
// failure surfaces as an IO error naming the target path and does not
// affect the other output format.
func (a *Assembler) WriteJSON(report *Report, path string) error {
	const op = "write_json_report"

	data, err := json.MarshalIndent(report, "", "    ")
	if err != nil {
		return diagerrors.WrapIO(op, path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return diagerrors.WrapIO(op, path, err)
	}

	a.logger.Info().Str("path", path).Msg("JSON report generated")
	return nil
}
