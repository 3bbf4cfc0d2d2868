package dto

// IngestRequestDTO carries one caller-decoded tabular file. The upload
// layer owns CSV/XLSX parsing; the engine only sees named cells.
type IngestRequestDTO struct {
	Kind    string           `json:"kind,omitempty" example:"primary_log"`
	Headers []string         `json:"headers"`
	Rows    []map[string]any `json:"rows"`
}

type IngestResponseDTO struct {
	DetectedKind string `json:"detected_kind" example:"primary_log"`
	Processed    int    `json:"processed" example:"120"`
	Skipped      int    `json:"skipped" example:"3"`
}
