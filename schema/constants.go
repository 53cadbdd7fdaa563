package schema

// Persisted analysis format versioning. Loaders accept any data-format in the
// half-open range [MinDataFormat, MaxDataFormat).
const (
	CurrentDataFormat = 1
	MinDataFormat     = 1
	MaxDataFormat     = 2
)

// Metadata keys carried by every analysis.
const (
	MetaFormatterVersion = "formatter-version"
	MetaFormatterArgs    = "formatter-extra-args"
	MetaCreatedAt        = "created-at"
	MetaDataFormat       = "data-format"
)

// ZipEntryName is the single member name used for zip-wrapped analyses.
const ZipEntryName = "analysis.json"

// CreatedAtFormat is the timestamp layout for the created-at metadata key.
const CreatedAtFormat = "2006-01-02T15:04:05Z07:00"
