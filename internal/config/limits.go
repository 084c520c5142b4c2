package config

const (
	// MaxFileCodeLength is the maximum length for a folder's file code.
	// Codes are short registry identifiers; 64 is generous.
	MaxFileCodeLength = 64

	// MaxSubjectLength is the maximum length for a folder subject line.
	MaxSubjectLength = 255

	// MaxPersonNameLength is the maximum length for checkout person
	// name and surname fields.
	MaxPersonNameLength = 100

	// MaxDetailsLength is the maximum length for free-text fields
	// (checkout reason, partial-checkout description, disposal reason,
	// audit log details).
	MaxDetailsLength = 1000

	// MaxAttachmentSize is the maximum accepted upload size for folder
	// attachments (PDF scans and spreadsheets), in bytes.
	MaxAttachmentSize = 25 << 20

	// MinFileYear and MaxFileYear bound the plausible file year range.
	// The archive holds nothing older than the institution itself.
	MinFileYear = 1900
	MaxFileYear = 2100
)
