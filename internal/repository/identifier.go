package repository

import (
	"crypto/md5"
	"encoding/hex"
	"strings"

	"github.com/google/uuid"
)

// Identifiers are capped at 20 printable bytes. The cap is an external
// contract shared with the legacy consumers of these tables.
const idMaxLen = 20

// NewExamRequestID synthesises a request identifier from its parents
// plus a truncated random hash.
func NewExamRequestID(periodID, evaluationID, courseID string) string {
	seed := periodID + "|" + evaluationID + "|" + courseID + "|" + uuid.NewString()
	id := "EX" + compact(periodID) + compact(evaluationID) + compact(courseID) + hashHex(seed, 7)
	return clip(id)
}

// NewExamGroupID derives the exam-group identifier.
func NewExamGroupID(requestID, groupID string) string {
	return clip("EG" + hashHex(requestID+"|"+groupID, 18))
}

// NewRoomAssignmentID derives the room-assignment identifier.
func NewRoomAssignmentID(requestID, roomID string) string {
	return clip("AA" + hashHex(requestID+"|"+roomID+"|"+uuid.NewString(), 18))
}

// NewJuryAssignmentID derives the jury-assignment identifier.
func NewJuryAssignmentID(requestID, teacherID string) string {
	return clip("ES" + hashHex(requestID+"|"+teacherID, 18))
}

func hashHex(seed string, n int) string {
	sum := md5.Sum([]byte(seed))
	return strings.ToUpper(hex.EncodeToString(sum[:]))[:n]
}

// compact strips separators so parent ids pack into the prefix.
func compact(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r == '-' || r == '_' || r == ' ' {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func clip(id string) string {
	if len(id) > idMaxLen {
		return id[:idMaxLen]
	}
	return id
}
