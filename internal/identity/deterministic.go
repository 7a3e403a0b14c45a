package identity

import (
	"strconv"
	"strings"

	hashid "github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

// UUID derives a deterministic UUID from a stable key using go-hashid.
//
// Callers must prefix keys by entity type to avoid collisions.
func UUID(key string) uuid.UUID {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return uuid.Nil
	}
	uid, err := hashid.NewUUID(trimmed, hashid.WithHashAlgorithm(hashid.SHA256), hashid.WithNormalization(true))
	if err != nil || uid == uuid.Nil {
		return uuid.NewSHA1(uuid.NameSpaceOID, []byte(trimmed))
	}
	return uid
}

// MethodRecordUUID is the primary key of the row storing the method with the
// given public id.
func MethodRecordUUID(methodID string) uuid.UUID {
	return UUID("methods:method:" + strings.TrimSpace(methodID))
}

// SeedMethodID returns the public id of a seeded sample method, stable across
// runs so links between seeded methods survive re-seeding.
func SeedMethodID(slug string) string {
	return UUID("methods:seed:" + strings.ToLower(strings.TrimSpace(slug))).String()
}

// ChildID derives a stable id for a step, asset or expert of a seeded method.
func ChildID(methodID, kind string, position int) string {
	return UUID("methods:" + kind + ":" + methodID + ":" + strconv.Itoa(position)).String()
}
