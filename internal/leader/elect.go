// Package leader decides which job of a build matrix leads, and runs the
// leader's wait-and-report duty.
package leader

import (
	"errors"
	"strconv"
	"strings"
)

// ErrNotMatrixBuild is returned when the job number carries no matrix
// ordinal, so there is nothing to elect a leader among.
var ErrNotMatrixBuild = errors.New("job number has no matrix ordinal; don't use leader election for a build without a matrix")

// Role is the part a job plays in the matrix.
type Role int

const (
	RoleMinion Role = iota
	RoleLeader
)

func (r Role) String() string {
	if r == RoleLeader {
		return "leader"
	}
	return "minion"
}

// IsLeader reports whether jobNumber ("<build>.<ordinal>") carries the
// configured leader ordinal after its last '.'.
func IsLeader(jobNumber string, masterNumber int) (bool, error) {
	idx := strings.LastIndex(jobNumber, ".")
	if idx < 0 {
		return false, ErrNotMatrixBuild
	}
	return jobNumber[idx+1:] == strconv.Itoa(masterNumber), nil
}

// Elect returns the job's role. force makes any matrix job the leader, but
// a non-matrix job number is rejected even then.
func Elect(jobNumber string, masterNumber int, force bool) (Role, error) {
	leader, err := IsLeader(jobNumber, masterNumber)
	if err != nil {
		return RoleMinion, err
	}
	if leader || force {
		return RoleLeader, nil
	}
	return RoleMinion, nil
}
