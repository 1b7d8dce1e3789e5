package api

import (
	"encoding/base64"
	"errors"
	"strings"

	"github.com/mrw-bin/nordic-subtitles-qc-package/internal/profile"
	"github.com/mrw-bin/nordic-subtitles-qc-package/internal/qc"
	"github.com/mrw-bin/nordic-subtitles-qc-package/internal/qcfix"
)

// Fix modes accepted by the fix endpoint. Assisted mode is a defined no-op:
// it never mutates content, the surrounding workflow is responsible for
// presenting suggestions for human approval.
const (
	FixModeNone     = "none"
	FixModeSafeOnly = "safe-only"
	FixModeAssisted = "assisted-with-approval"
)

type runRequest struct {
	Content       string `json:"content,omitempty"`
	ContentBase64 string `json:"contentBase64,omitempty"`
	Filename      string `json:"filename"`
	Profile       string `json:"profile,omitempty"`
}

type fixRequest struct {
	runRequest
	FixMode string `json:"fixMode,omitempty"`
}

// resolveContent prefers the base64 payload when both are present.
func (r *runRequest) resolveContent() (string, error) {
	if r.ContentBase64 != "" {
		data, err := base64.StdEncoding.DecodeString(r.ContentBase64)
		if err != nil {
			return "", errors.New("contentBase64 is not valid base64")
		}
		return string(data), nil
	}
	if strings.TrimSpace(r.Content) == "" {
		return "", errors.New("provide content or contentBase64")
	}
	return r.Content, nil
}

type runResponse struct {
	Issues     []qc.Issue `json:"issues"`
	Metrics    qc.Metrics `json:"metrics"`
	Preview    string     `json:"preview"`
	ReportHTML string     `json:"reportHtml,omitempty"`
}

type fixResponse struct {
	Issues    []qc.Issue           `json:"issues"`
	Metrics   qc.Metrics           `json:"metrics"`
	Changes   []qcfix.ChangeRecord `json:"changes,omitempty"`
	FixedText string               `json:"fixedText,omitempty"`
}

type profileEntry struct {
	Name       string           `json:"name"`
	Thresholds *profile.Profile `json:"thresholds"`
	Guidelines []string         `json:"guidelines,omitempty"`
}

type profilesResponse struct {
	Version  string         `json:"version"`
	Profiles []profileEntry `json:"profiles"`
}

type errorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"requestId,omitempty"`
}
