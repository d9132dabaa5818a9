package dashboard

import (
	"errors"
	"fmt"

	"github.com/Rakhulsr/go-admin-dashboard/app/gateway"
)

var (
	// ErrConfirmationRequired aborts a delete the admin has not confirmed.
	// Nothing is sent and no state changes.
	ErrConfirmationRequired = errors.New("deletion not confirmed")
	ErrNoActiveForm         = errors.New("no add or edit form is open")
	ErrEntityNotFound       = errors.New("entity not found")
	ErrInvalidModal         = errors.New("invalid modal mode")
)

const SchemaUpdateMessage = "Database schema needs to be updated. Please run the migration script to add media columns."

// SaveError is a write the backend refused. Message is fit to show the admin.
type SaveError struct {
	Kind    Kind      `json:"kind"`
	Mode    ModalMode `json:"mode"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
}

func (e *SaveError) Error() string {
	return e.Message
}

func (e *SaveError) Unwrap() error {
	return e.Err
}

func saveErrorMessage(kind Kind, mode ModalMode, err error) string {
	switch gateway.KindOf(err) {
	case gateway.KindSchemaDrift:
		return "Database schema is outdated. " + SchemaUpdateMessage
	case gateway.KindForeignKey:
		return "Invalid category selected. Please choose a valid category."
	case gateway.KindDuplicate:
		return fmt.Sprintf("A %s with this name already exists.", kind)
	case gateway.KindPermission:
		return "Permission denied. Please check your admin access."
	}
	return fmt.Sprintf("Failed to %s %s. Error: %s", mode, kind, err.Error())
}
