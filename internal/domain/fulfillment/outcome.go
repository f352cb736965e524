package fulfillment

import (
	"encoding/json"
	"fmt"
	"strings"
)

// SyncOutcome status values, exact string contracts.
const (
	StatusSuccess = "Success"
	StatusFailed  = "Failed"
)

// alreadySyncedSignatures are error-payload fragments meaning the target
// system is already in the requested state. Idempotent re-delivery is
// success, not failure.
var alreadySyncedSignatures = []string{
	"already been authorised",
	"already been authorized",
	"already authorised",
	"already authorized",
	"already picked",
	"already packed",
	"already shipped",
}

// StepResult is the orchestrator-reported outcome of one executed
// sub-operation. A nil StepResult means the sub-operation was never
// attempted and counts as trivially successful.
type StepResult struct {
	StatusCode int    `json:"statusCode"`
	Body       string `json:"body,omitempty"`
}

// SyncOutcome is the aggregated result of a pick/pack/ship sequence.
type SyncOutcome struct {
	SyncStatus         string `json:"syncStatus"`
	Message            string `json:"message"`
	Cin7ID             string `json:"cin7Id,omitempty"`
	Cin7Key            string `json:"cin7Key,omitempty"`
	ParentReferenceKey string `json:"parentReferenceKey,omitempty"`
}

// Aggregate combines the outcomes of the pick, pack, and ship calls into
// one overall status, a composite reference key, and a human-readable
// message. cin7ID and cin7Key are caller-supplied; the key is prefixed with
// the last 5 characters of any task id discovered in the step responses.
// parentReferenceKey passes through unchanged.
func Aggregate(pick, pack, ship *StepResult, cin7ID, cin7Key, parentReferenceKey string) SyncOutcome {
	steps := []struct {
		name   string
		result *StepResult
	}{
		{"pick", pick},
		{"pack", pack},
		{"ship", ship},
	}

	allOK := true
	var alreadyNames []string
	var failures []string
	for _, step := range steps {
		ok, already := stepSucceeded(step.result)
		if !ok {
			allOK = false
			failures = append(failures, step.name+": "+failureReason(step.result))
			continue
		}
		if already {
			alreadyNames = append(alreadyNames, step.name)
		}
	}

	if taskID := discoverTaskID(pick, pack, ship); taskID != "" {
		cin7Key = lastN(taskID, 5) + ":" + cin7Key
	}

	outcome := SyncOutcome{
		Cin7ID:             cin7ID,
		Cin7Key:            cin7Key,
		ParentReferenceKey: parentReferenceKey,
	}
	if !allOK {
		outcome.SyncStatus = StatusFailed
		outcome.Message = strings.Join(failures, "; ")
		return outcome
	}

	outcome.SyncStatus = StatusSuccess
	if len(alreadyNames) > 0 {
		outcome.Message = fmt.Sprintf("%s already in target state; remaining operations synced", strings.Join(alreadyNames, ", "))
	} else {
		outcome.Message = "pick, pack and ship synced successfully"
	}
	return outcome
}

// stepSucceeded reports whether a step counts as success and whether that
// success was an already-in-target-state short-circuit.
func stepSucceeded(r *StepResult) (ok, already bool) {
	if r == nil {
		return true, false
	}
	if r.StatusCode >= 200 && r.StatusCode < 300 {
		return true, false
	}
	body := strings.ToLower(r.Body)
	for _, sig := range alreadySyncedSignatures {
		if strings.Contains(body, sig) {
			return true, true
		}
	}
	return false, false
}

// failureReason extracts a structured exception message from the error
// body when it parses, falling back to the raw status code.
func failureReason(r *StepResult) string {
	if r == nil {
		return ""
	}
	var payload struct {
		Exception struct {
			Message string `json:"message"`
		} `json:"exception"`
		ErrorMessage string `json:"error"`
		Message      string `json:"message"`
	}
	if err := json.Unmarshal([]byte(r.Body), &payload); err == nil {
		switch {
		case payload.Exception.Message != "":
			return payload.Exception.Message
		case payload.ErrorMessage != "":
			return payload.ErrorMessage
		case payload.Message != "":
			return payload.Message
		}
	}
	return fmt.Sprintf("status %d", r.StatusCode)
}

// discoverTaskID scans step response bodies for a source-side task id.
func discoverTaskID(results ...*StepResult) string {
	for _, r := range results {
		if r == nil || r.Body == "" {
			continue
		}
		var payload struct {
			TaskID string `json:"TaskID"`
		}
		if err := json.Unmarshal([]byte(r.Body), &payload); err == nil && payload.TaskID != "" {
			return payload.TaskID
		}
	}
	return ""
}
