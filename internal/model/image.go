package model

// ImageRef identifies a remotely stored image: a publicly fetchable URL plus
// the opaque storage key needed to delete the blob later. References are
// embedded inline on their owning record and have no lifecycle of their own.
type ImageRef struct {
	URL      string `json:"url" gorm:"size:512"`
	PublicID string `json:"public_id" gorm:"size:255"`
}

// IsZero reports whether the reference points at nothing.
func (r ImageRef) IsZero() bool {
	return r.PublicID == "" && r.URL == ""
}

// ImageList is an ordered list of references stored as a single JSON column.
type ImageList []ImageRef

// PublicIDs returns the storage keys of every non-empty reference in order.
func (l ImageList) PublicIDs() []string {
	ids := make([]string, 0, len(l))
	for _, ref := range l {
		if ref.PublicID != "" {
			ids = append(ids, ref.PublicID)
		}
	}
	return ids
}
