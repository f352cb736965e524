package fulfillment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAggregate(t *testing.T) {
	ok := &StepResult{StatusCode: 200, Body: `{"TaskID":"task-1234567"}`}

	t.Run("All successful", func(t *testing.T) {
		out := Aggregate(ok, ok, ok, "SO-1001", "1001:456789", "parent-1")
		assert.Equal(t, "Success", out.SyncStatus)
		assert.Equal(t, "SO-1001", out.Cin7ID)
		assert.Equal(t, "34567:1001:456789", out.Cin7Key)
		assert.Equal(t, "parent-1", out.ParentReferenceKey)
		assert.Equal(t, "pick, pack and ship synced successfully", out.Message)
	})

	t.Run("Unattempted sub-operations count as success", func(t *testing.T) {
		out := Aggregate(nil, nil, nil, "SO-1001", "key", "")
		assert.Equal(t, "Success", out.SyncStatus)
		assert.Equal(t, "key", out.Cin7Key)
	})

	t.Run("Already-authorised error counts as success and is noted", func(t *testing.T) {
		alreadyPick := &StepResult{
			StatusCode: 400,
			Body:       `{"exception":{"message":"This sale task has already been authorised."}}`,
		}
		out := Aggregate(alreadyPick, &StepResult{StatusCode: 200}, &StepResult{StatusCode: 201}, "SO-1001", "key", "")
		assert.Equal(t, "Success", out.SyncStatus)
		assert.Contains(t, out.Message, "pick already in target state")
	})

	t.Run("Failure extracts the structured exception message", func(t *testing.T) {
		badShip := &StepResult{
			StatusCode: 422,
			Body:       `{"exception":{"message":"Carrier is required"}}`,
		}
		out := Aggregate(ok, ok, badShip, "SO-1001", "key", "")
		assert.Equal(t, "Failed", out.SyncStatus)
		assert.Contains(t, out.Message, "ship: Carrier is required")
	})

	t.Run("Unparseable error body falls back to the status code", func(t *testing.T) {
		bad := &StepResult{StatusCode: 500, Body: "<html>gateway error</html>"}
		out := Aggregate(bad, nil, nil, "SO-1001", "key", "")
		assert.Equal(t, "Failed", out.SyncStatus)
		assert.Contains(t, out.Message, "pick: status 500")
	})

	t.Run("Multiple failures concatenate per-operation reasons", func(t *testing.T) {
		badPick := &StepResult{StatusCode: 400, Body: `{"error":"no lines"}`}
		badPack := &StepResult{StatusCode: 409, Body: `{"message":"conflict"}`}
		out := Aggregate(badPick, badPack, nil, "SO-1001", "key", "")
		assert.Equal(t, "Failed", out.SyncStatus)
		assert.Contains(t, out.Message, "pick: no lines")
		assert.Contains(t, out.Message, "pack: conflict")
	})

	t.Run("No discovered task id leaves the key unprefixed", func(t *testing.T) {
		out := Aggregate(&StepResult{StatusCode: 200}, nil, nil, "SO-1001", "key", "")
		assert.Equal(t, "key", out.Cin7Key)
	})
}
