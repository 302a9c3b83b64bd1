package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrMalformedUserRecord is returned when a line or JSON tuple cannot be
// decoded into a [UserRecord].
var ErrMalformedUserRecord = errors.New("malformed user record")

// UserRecord is the decoded form of a list-dataset line ("id,uid").
type UserRecord struct {
	// ID is the person identifier (e.g. student or employee number).
	ID string
	// UID is the hex identifier read from the person's card/tag.
	UID string
}

// String renders the record in its on-disk "id,uid" form.
func (u UserRecord) String() string {
	return u.ID + "," + u.UID
}

// ParseUserRecord decodes an "id,uid" line. The uid may itself contain spaces
// (tag bytes are rendered as "AB CD EF"), so only the first comma separates.
func ParseUserRecord(line string) (UserRecord, error) {
	id, uid, ok := strings.Cut(strings.TrimRight(line, "\r\n"), ",")
	if !ok {
		return UserRecord{}, fmt.Errorf("%w: %q", ErrMalformedUserRecord, line)
	}
	return UserRecord{ID: id, UID: uid}, nil
}

// UnmarshalJSON decodes the remote 2-tuple form ["id", "uid"]. Numeric ids are
// accepted as spreadsheets tend to return them unquoted.
func (u *UserRecord) UnmarshalJSON(b []byte) error {
	var tuple []json.RawMessage
	if err := json.Unmarshal(b, &tuple); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedUserRecord, err)
	}
	if len(tuple) < 2 {
		return fmt.Errorf("%w: expected 2 fields, got %d", ErrMalformedUserRecord, len(tuple))
	}

	id, err := tupleField(tuple[0])
	if err != nil {
		return err
	}
	uid, err := tupleField(tuple[1])
	if err != nil {
		return err
	}

	u.ID, u.UID = id, uid
	return nil
}

// MarshalJSON encodes the record as the 2-tuple ["id", "uid"].
func (u UserRecord) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]string{u.ID, u.UID})
}

func tupleField(raw json.RawMessage) (string, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, nil
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String(), nil
	}
	return "", fmt.Errorf("%w: unsupported field %s", ErrMalformedUserRecord, string(raw))
}

// UserRecordsToLines renders records in their on-disk form.
func UserRecordsToLines(records []UserRecord) []string {
	lines := make([]string, 0, len(records))
	for _, r := range records {
		lines = append(lines, r.String())
	}
	return lines
}
