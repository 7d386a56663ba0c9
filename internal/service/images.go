package service

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"atelier/internal/model"
	"atelier/internal/storage"
)

// discardTimeout bounds each best-effort blob delete so storage hygiene can
// never hang a request that already succeeded.
const discardTimeout = 30 * time.Second

// discardImages deletes superseded blobs from remote storage. It runs only
// after the owning record's new state is durably persisted, and failures are
// logged and swallowed: the record is the authoritative state, an undeleted
// blob is merely storage cost.
func discardImages(st storage.Client, refs ...model.ImageRef) {
	for _, ref := range refs {
		if ref.PublicID == "" {
			continue
		}
		ctx, cancel := context.WithTimeout(context.Background(), discardTimeout)
		if err := st.Delete(ctx, ref.PublicID); err != nil {
			log.Error().Err(err).
				Str("public_id", ref.PublicID).
				Msg("best-effort delete of superseded image failed")
		}
		cancel()
	}
}

// droppedImages returns the references in old whose public IDs no longer
// appear in new. Used when a whole list or section set is replaced.
func droppedImages(old, new []model.ImageRef) []model.ImageRef {
	kept := make(map[string]struct{}, len(new))
	for _, ref := range new {
		if ref.PublicID != "" {
			kept[ref.PublicID] = struct{}{}
		}
	}
	var dropped []model.ImageRef
	for _, ref := range old {
		if ref.PublicID == "" {
			continue
		}
		if _, ok := kept[ref.PublicID]; !ok {
			dropped = append(dropped, ref)
		}
	}
	return dropped
}
