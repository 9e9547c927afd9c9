package validators

import (
	"context"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/MKhiriev/group-vault/models"
)

// Field names accepted by [ItemValidator.Validate].
const (
	FieldType       = "type"
	FieldName       = "name"
	FieldPayload    = "payload"
	FieldUpload     = "upload"
	FieldPassphrase = "passphrase"
)

// MaxNameLength bounds group and item names, in runes.
const MaxNameLength = 256

// DraftItem pairs an item draft with its optional file upload so both can
// be validated as one value.
type DraftItem struct {
	Draft  models.ItemDraft
	Upload *models.FileUpload
}

// DraftGroup is the input of group creation.
type DraftGroup struct {
	Name       string
	Passphrase []byte
}

// ItemValidator implements [Validator] for [DraftItem] and [DraftGroup].
type ItemValidator struct {
	maxFileSize int64
}

// NewItemValidator returns a validator rejecting uploads above maxFileSize
// bytes. Zero disables the size check.
func NewItemValidator(maxFileSize int64) Validator {
	return &ItemValidator{maxFileSize: maxFileSize}
}

func (v *ItemValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case DraftItem:
		return v.validateItem(ctx, value, fields...)
	case *DraftItem:
		return v.validateItem(ctx, *value, fields...)

	case DraftGroup:
		return v.validateGroup(ctx, value, fields...)
	case *DraftGroup:
		return v.validateGroup(ctx, *value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *ItemValidator) validateItem(_ context.Context, item DraftItem, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldType, FieldName, FieldPayload, FieldUpload}
	}

	for _, f := range fields {
		switch f {
		case FieldType:
			if !item.Draft.Type.Valid() {
				return ErrInvalidItemType
			}
		case FieldName:
			if err := validateName(item.Draft.Name); err != nil {
				return err
			}
		case FieldPayload:
			if err := validatePayload(item.Draft); err != nil {
				return err
			}
		case FieldUpload:
			if err := v.validateUpload(item); err != nil {
				return err
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *ItemValidator) validateGroup(_ context.Context, group DraftGroup, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldName, FieldPassphrase}
	}

	for _, f := range fields {
		switch f {
		case FieldName:
			if err := validateName(group.Name); err != nil {
				return err
			}
		case FieldPassphrase:
			if len(group.Passphrase) == 0 {
				return ErrEmptyPassphrase
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func validateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyName
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		return ErrNameTooLong
	}
	return nil
}

// validatePayload enforces that exactly the field matching the type is set.
func validatePayload(d models.ItemDraft) error {
	switch d.Type {
	case models.ItemTypeText:
		if d.URL != "" {
			return ErrUnexpectedPayload
		}
		if d.Content == "" {
			return ErrEmptyContent
		}
	case models.ItemTypeLink:
		if d.Content != "" {
			return ErrUnexpectedPayload
		}
		u, err := url.Parse(d.URL)
		if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
			return ErrInvalidURL
		}
	case models.ItemTypeFile:
		if d.Content != "" || d.URL != "" {
			return ErrUnexpectedPayload
		}
	default:
		return ErrInvalidItemType
	}
	return nil
}

func (v *ItemValidator) validateUpload(item DraftItem) error {
	if item.Draft.Type != models.ItemTypeFile {
		if item.Upload != nil {
			return ErrUnexpectedPayload
		}
		return nil
	}
	if item.Upload == nil {
		return ErrMissingUpload
	}
	if v.maxFileSize > 0 && int64(len(item.Upload.Data)) > v.maxFileSize {
		return ErrFileTooLarge
	}
	return nil
}
