package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/MKhiriev/go-attendance-sync/internal/config"
	"github.com/MKhiriev/go-attendance-sync/internal/logger"
	"github.com/MKhiriev/go-attendance-sync/internal/utils"
	"github.com/MKhiriev/go-attendance-sync/models"
)

const fetchListsAction = "getUsers"

type httpRemoteStore struct {
	client *utils.HTTPClient
	url    string

	logger *logger.Logger
}

// NewHTTPRemoteStore constructs the HTTP implementation of [RemoteStore]
// talking to the script endpoint at cfg.RemoteURL. Actions are passed as the
// raw query string of the request, e.g. "<url>?addMultipleLogs".
//
// Returns an error if cfg.RemoteURL cannot be parsed as an absolute URL.
func NewHTTPRemoteStore(cfg config.Adapter, logger *logger.Logger) (RemoteStore, error) {
	remote, err := url.Parse(strings.TrimSpace(cfg.RemoteURL))
	if err != nil {
		return nil, fmt.Errorf("invalid remote url: %w", err)
	}
	if remote.Scheme == "" || remote.Host == "" {
		return nil, fmt.Errorf("invalid remote url: %q must include host and scheme", cfg.RemoteURL)
	}

	return &httpRemoteStore{client: utils.NewHTTPClient(cfg.RequestTimeout), url: remote.String(), logger: logger}, nil
}

// FetchLists implements [RemoteStore]. It POSTs an empty body to
// "<url>?getUsers" and decodes {"approved": [[id, uid], ...], "pending": [...]}.
func (h *httpRemoteStore) FetchLists(ctx context.Context) (models.UserLists, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		Post(h.actionURL(fetchListsAction))
	if err != nil {
		h.logger.Err(err).Str("func", "httpRemoteStore.FetchLists").Msg("fetch lists request failed")
		return models.UserLists{}, fmt.Errorf("%w: fetch lists: %w", ErrConnectivity, err)
	}
	if err = mapHTTPError(resp); err != nil {
		h.logger.Err(err).Str("func", "httpRemoteStore.FetchLists").Int("status", resp.StatusCode()).Msg("fetch lists rejected")
		return models.UserLists{}, err
	}

	lists, err := decodeUserLists(resp.Body())
	if err != nil {
		h.logger.Err(err).Str("func", "httpRemoteStore.FetchLists").Int("bytes", len(resp.Body())).Msg("error decoding user lists")
		return models.UserLists{}, err
	}

	return lists, nil
}

// PostBatch implements [RemoteStore]. The lines are joined with "\n" without a
// trailing terminator and sent as text/csv to "<url>?<action>".
func (h *httpRemoteStore) PostBatch(ctx context.Context, d models.Dataset, lines []string) (int, error) {
	action := d.RemoteAction()
	if action == "" {
		return 0, fmt.Errorf("%w: %s is not uploaded", models.ErrUnknownDataset, d)
	}
	if len(lines) == 0 {
		return 0, nil
	}

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "text/csv").
		SetBody(strings.Join(lines, "\n")).
		Post(h.actionURL(action))
	if err != nil {
		h.logger.Err(err).Str("func", "httpRemoteStore.PostBatch").Stringer("dataset", d).Msg("post batch request failed")
		return 0, fmt.Errorf("%w: post %s: %w", ErrConnectivity, d, err)
	}
	if err = mapHTTPError(resp); err != nil {
		h.logger.Err(err).Str("func", "httpRemoteStore.PostBatch").Stringer("dataset", d).Int("status", resp.StatusCode()).Msg("post batch rejected")
		return 0, err
	}

	return len(lines), nil
}

func (h *httpRemoteStore) actionURL(action string) string {
	if strings.Contains(h.url, "?") {
		return h.url + "&" + action
	}
	return h.url + "?" + action
}

// userListsPayload uses pointers so that a missing group can be told apart
// from an empty one.
type userListsPayload struct {
	Approved *[]models.UserRecord `json:"approved"`
	Pending  *[]models.UserRecord `json:"pending"`
}

func decodeUserLists(body []byte) (models.UserLists, error) {
	if len(strings.TrimSpace(string(body))) == 0 {
		return models.UserLists{}, fmt.Errorf("%w: empty body", ErrMalformedPayload)
	}

	var payload userListsPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return models.UserLists{}, fmt.Errorf("%w: %w", ErrMalformedPayload, err)
	}
	if payload.Approved == nil || payload.Pending == nil {
		return models.UserLists{}, fmt.Errorf("%w: approved and pending groups are required", ErrMalformedPayload)
	}

	for _, group := range [][]models.UserRecord{*payload.Approved, *payload.Pending} {
		for _, r := range group {
			if err := validateRecord(r); err != nil {
				return models.UserLists{}, err
			}
		}
	}

	return models.UserLists{Approved: *payload.Approved, Pending: *payload.Pending}, nil
}

// validateRecord rejects records that would not read back as themselves
// once stored as an "id,uid" line.
func validateRecord(r models.UserRecord) error {
	switch {
	case strings.ContainsAny(r.ID+r.UID, "\r\n"):
		return fmt.Errorf("%w: line break in record %q", ErrMalformedPayload, r.String())
	case strings.Contains(r.ID, ","):
		return fmt.Errorf("%w: comma in record id %q", ErrMalformedPayload, r.ID)
	case len(r.String()) > models.MaxLineLength:
		return fmt.Errorf("%w: record of %d bytes exceeds %d", ErrMalformedPayload, len(r.String()), models.MaxLineLength)
	}
	return nil
}
