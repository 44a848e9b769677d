package redis

import (
	"encoding/json"
	"fmt"

	jsonpatch "github.com/evanphx/json-patch"
)

// MergeUpdate decodes raw into doc, runs update and returns raw with the
// changes update made to doc applied as a JSON merge patch. Keys of raw that
// doc does not declare are left untouched.
func MergeUpdate(raw []byte, doc interface{}, update func()) ([]byte, error) {
	if err := json.Unmarshal(raw, doc); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	before, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	if update != nil {
		update()
	}
	after, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	patch, err := jsonpatch.CreateMergePatch(before, after)
	if err != nil {
		return nil, fmt.Errorf("create merge patch: %w", err)
	}
	merged, err := jsonpatch.MergePatch(raw, patch)
	if err != nil {
		return nil, fmt.Errorf("apply merge patch: %w", err)
	}
	return merged, nil
}
