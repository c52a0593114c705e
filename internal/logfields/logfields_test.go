package logfields

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAttrKeys(t *testing.T) {
	assert.Equal(t, KeyJobNumber, JobNumber("10.2").Key)
	assert.Equal(t, "10.2", JobNumber("10.2").Value.String())
	assert.Equal(t, KeyStatus, Status("others_failed").Key)
	assert.Equal(t, int64(3), Pending(3).Value.Int64())
	assert.True(t, Fatal().Value.Bool())
}

func TestError(t *testing.T) {
	assert.Equal(t, "", Error(nil).Value.String())
	assert.Equal(t, "boom", Error(errors.New("boom")).Value.String())
}
