package logging

// Standardized structured logging keys.
const (
	FieldComponent   = "component"
	FieldEventType   = "event_type"
	FieldErrorHint   = "error_hint"
	FieldErrorKind   = "error_kind"
	FieldImpact      = "impact"
	FieldRunID       = "run_id"
	FieldSource      = "source_file"
	FieldStreamIndex = "stream_index"
	FieldCodec       = "codec"
	FieldLanguage    = "language"
	FieldDisposition = "disposition"
	FieldOutput      = "output_path"
	FieldMode        = "mode"
	FieldCommand     = "command"
	FieldProgress    = "progress_percent"
)
