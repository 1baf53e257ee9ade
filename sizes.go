package inkwell

// Sizes in bytes
const (
	// Kibibytes
	Kb int = 1_024
	// Kilobytes
	KB int = 1_000
	// Mebibytes
	Mb int = 1_048_576
	// Megabytes
	MB int = 1_000_000
)

// Built-in limits and defaults.
const (
	// Messages longer than this are cut and marked as truncated.
	maxMessageSize = 5 * Mb
	truncationMark = "\n... [Message Truncated]"

	defaultMaxBytes      = 100 * Mb
	defaultMaxRolls      = 5
	defaultSelfHealEvery = 100
	defaultPendingBytes  = 8 * Mb
	defaultPendingLines  = 10_000
)
