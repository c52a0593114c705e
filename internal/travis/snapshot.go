package travis

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/RevCBH/matrixleader/internal/logfields"
)

// matrixElement is the subset of a build's matrix entry the leader reads.
type matrixElement struct {
	Number       string  `json:"number"`
	FinishedAt   *string `json:"finished_at"`
	Result       *int    `json:"result"`
	AllowFailure bool    `json:"allow_failure"`
}

// requiredMatrixFields must be present on every matrix element, even when null.
var requiredMatrixFields = []string{"number", "finished_at", "result", "allow_failure"}

// Snapshot fetches the current status of every job in the build matrix.
// leaderJobNumber marks which element is the calling leader.
func (c *Client) Snapshot(ctx context.Context, buildID, leaderJobNumber string) (Snapshot, error) {
	c.logger.Debug("Taking snapshot", logfields.BuildID(buildID))

	body, err := c.doRequest(ctx, http.MethodGet, "builds/"+buildID, nil)
	if err != nil {
		return nil, fmt.Errorf("get build %s: %w", buildID, err)
	}

	return ParseSnapshot(body, leaderJobNumber)
}

// ParseSnapshot decodes a build response body into a Snapshot.
// Missing keys are reported as *SchemaError rather than defaulted.
func ParseSnapshot(data []byte, leaderJobNumber string) (Snapshot, error) {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("unmarshal build response: %w", err)
	}

	rawMatrix, ok := doc["matrix"]
	if !ok {
		return nil, &SchemaError{Index: -1, Field: "matrix", Message: "missing"}
	}
	if isNull(rawMatrix) {
		return nil, &SchemaError{Index: -1, Field: "matrix", Message: "null"}
	}

	var elems []json.RawMessage
	if err := json.Unmarshal(rawMatrix, &elems); err != nil {
		return nil, &SchemaError{Index: -1, Field: "matrix", Message: err.Error()}
	}

	snap := make(Snapshot, 0, len(elems))
	for i, raw := range elems {
		job, err := parseMatrixElement(i, raw, leaderJobNumber)
		if err != nil {
			return nil, err
		}
		snap = append(snap, job)
	}
	return snap, nil
}

func parseMatrixElement(index int, raw json.RawMessage, leaderJobNumber string) (JobStatus, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return JobStatus{}, &SchemaError{Index: index, Field: "", Message: err.Error()}
	}
	for _, name := range requiredMatrixFields {
		if _, ok := fields[name]; !ok {
			return JobStatus{}, &SchemaError{Index: index, Field: name, Message: "missing"}
		}
	}
	if isNull(fields["number"]) {
		return JobStatus{}, &SchemaError{Index: index, Field: "number", Message: "null"}
	}

	var elem matrixElement
	if err := json.Unmarshal(raw, &elem); err != nil {
		return JobStatus{}, &SchemaError{Index: index, Field: "", Message: err.Error()}
	}

	return JobStatus{
		Number:       elem.Number,
		Finished:     elem.FinishedAt != nil,
		Result:       elem.Result,
		AllowFailure: elem.AllowFailure,
		Leader:       elem.Number == leaderJobNumber,
	}, nil
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
