package store

import (
	"strings"

	"github.com/goliatone/go-slug"
	hashid "github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"

	"github.com/goliatone/go-formkit/pkg/translit"
)

// deterministicID derives a stable UUID from key with hashid, falling back to
// a name-based UUID when hashing fails.
func deterministicID(key string) string {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return ""
	}
	uid, err := hashid.NewUUID(trimmed, hashid.WithHashAlgorithm(hashid.SHA256), hashid.WithNormalization(true))
	if err != nil || uid == uuid.Nil {
		uid = uuid.NewSHA1(uuid.NameSpaceOID, []byte(trimmed))
	}
	return uid.String()
}

// OptionID is the id given to an option that has none in its fixture. path
// holds the slugs from the root of the forest down to the option.
func OptionID(catalog string, path ...string) string {
	return deterministicID("formkit:option:" + strings.TrimSpace(catalog) + ":" + strings.Join(path, "/"))
}

// NewProductAttributeID returns the id of a newly stored attribute value.
func NewProductAttributeID() string {
	return uuid.NewString()
}

// Slugify transliterates name to Latin and normalizes it with go-slug.
func Slugify(name string, tr *translit.Table) string {
	if tr != nil {
		name = tr.ToLatin(name)
	}
	normalized, err := slug.Normalize(name)
	if err != nil {
		return ""
	}
	return normalized
}
