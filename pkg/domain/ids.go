package domain

import (
	"strings"

	"github.com/google/uuid"

	dErrors "givebridge/pkg/domain-errors"
)

// Typed identifiers keep account, donation and session ids from being mixed up
// at compile time. Parsing happens once at trust boundaries.
type (
	AccountID  uuid.UUID
	DonationID uuid.UUID
	SessionID  uuid.UUID
)

// ProjectID references a project in the external catalog. Catalog ids are
// opaque strings, not UUIDs.
type ProjectID string

const maxProjectIDLength = 128

func (id AccountID) String() string  { return uuid.UUID(id).String() }
func (id DonationID) String() string { return uuid.UUID(id).String() }
func (id SessionID) String() string  { return uuid.UUID(id).String() }
func (id ProjectID) String() string  { return string(id) }

func (id AccountID) IsNil() bool  { return uuid.UUID(id) == uuid.Nil }
func (id DonationID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }
func (id SessionID) IsNil() bool  { return uuid.UUID(id) == uuid.Nil }

func NewAccountID() AccountID   { return AccountID(uuid.New()) }
func NewDonationID() DonationID { return DonationID(uuid.New()) }
func NewSessionID() SessionID   { return SessionID(uuid.New()) }

func ParseAccountID(s string) (AccountID, error) {
	u, err := parseUUID(s, "account ID")
	return AccountID(u), err
}

func ParseDonationID(s string) (DonationID, error) {
	u, err := parseUUID(s, "donation ID")
	return DonationID(u), err
}

func ParseSessionID(s string) (SessionID, error) {
	u, err := parseUUID(s, "session ID")
	return SessionID(u), err
}

// ParseProjectID accepts any non-blank catalog id without control characters.
// Text marshaling renders ids in canonical UUID form in JSON documents and
// payloads instead of as raw byte arrays.
func (id AccountID) MarshalText() ([]byte, error)  { return uuid.UUID(id).MarshalText() }
func (id DonationID) MarshalText() ([]byte, error) { return uuid.UUID(id).MarshalText() }
func (id SessionID) MarshalText() ([]byte, error)  { return uuid.UUID(id).MarshalText() }

func (id *AccountID) UnmarshalText(b []byte) error  { return (*uuid.UUID)(id).UnmarshalText(b) }
func (id *DonationID) UnmarshalText(b []byte) error { return (*uuid.UUID)(id).UnmarshalText(b) }
func (id *SessionID) UnmarshalText(b []byte) error  { return (*uuid.UUID)(id).UnmarshalText(b) }

func ParseProjectID(s string) (ProjectID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", dErrors.New(dErrors.CodeBadRequest, "project ID required")
	}
	if len(s) > maxProjectIDLength {
		return "", dErrors.New(dErrors.CodeBadRequest, "project ID too long")
	}
	for _, r := range s {
		if r < 0x20 || r == 0x7f {
			return "", dErrors.New(dErrors.CodeBadRequest, "project ID contains control characters")
		}
	}
	return ProjectID(s), nil
}

func parseUUID(s, label string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeBadRequest, label+" required")
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.Wrap(err, dErrors.CodeBadRequest, "invalid "+label)
	}
	if u == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeBadRequest, label+" must not be nil")
	}
	return u, nil
}
