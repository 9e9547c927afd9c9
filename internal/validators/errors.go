package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrInvalidItemType   = errors.New("invalid item type")
	ErrEmptyName         = errors.New("name is required")
	ErrNameTooLong       = errors.New("name is too long")
	ErrEmptyContent      = errors.New("text item requires content")
	ErrInvalidURL        = errors.New("link item requires an absolute http(s) url")
	ErrMissingUpload     = errors.New("file item requires an upload")
	ErrUnexpectedPayload = errors.New("payload does not match item type")
	ErrFileTooLarge      = errors.New("file exceeds the upload limit")
	ErrEmptyPassphrase   = errors.New("passphrase is required")
)
