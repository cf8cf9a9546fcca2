package cache

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"posdesk/model"
)

// Fields that stay string-typed on the wire even when a patch carries them as
// numbers. Everything else numeric-looking is coerced to a number.
var stockTextFields = map[string]bool{
	"stock":         true,
	"morning_stock": true,
}

// ApplyMenuPatch merges a confirmed remote write into the cached menu
// collection for a hotel without re-fetching it. The remote write must
// already have succeeded; this never talks to the network.
//
// Merge is by item id, never by position: an existing entry is shallow-merged
// with the patch, an absent one is inserted at the head of the collection.
// Applying the same patch twice leaves the cache in the same state.
func (s *Store) ApplyMenuPatch(hotel, itemID string, patch map[string]any) error {
	if itemID == "" {
		return fmt.Errorf("cannot apply menu patch without an item id")
	}

	key := menuKey(hotel)
	lock := s.lockKey(key)
	lock.Lock()
	defer lock.Unlock()

	items, _ := s.Menu(hotel)
	normalized := normalizePatch(patch)

	idx := -1
	for i := range items {
		if items[i].ID.String() == itemID {
			idx = i
			break
		}
	}

	if idx >= 0 {
		merged, err := mergeItem(items[idx], normalized)
		if err != nil {
			return err
		}
		items[idx] = merged
	} else {
		normalized["id"] = itemID
		item, err := itemFromPatch(normalized)
		if err != nil {
			return err
		}
		items = append([]model.MenuItem{item}, items...)
	}

	return s.writeJSON(key, items)
}

// normalizePatch coerces numeric-looking string values to numbers, except the
// stock quantity fields which keep the remote's text convention.
func normalizePatch(patch map[string]any) map[string]any {
	out := make(map[string]any, len(patch))
	for field, value := range patch {
		if stockTextFields[field] {
			out[field] = stockText(value)
			continue
		}
		if str, ok := value.(string); ok {
			if f, err := strconv.ParseFloat(strings.TrimSpace(str), 64); err == nil {
				out[field] = f
				continue
			}
		}
		out[field] = value
	}
	return out
}

func stockText(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case model.Text:
		return v.String()
	case model.Number:
		return strconv.FormatFloat(v.Float64(), 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// mergeItem overlays the patch onto the existing item through its JSON form,
// so that only the fields present in the patch change.
func mergeItem(existing model.MenuItem, patch map[string]any) (model.MenuItem, error) {
	raw, err := json.Marshal(existing)
	if err != nil {
		return model.MenuItem{}, fmt.Errorf("failed to marshal cached item: %w", err)
	}
	var asMap map[string]any
	if err := json.Unmarshal(raw, &asMap); err != nil {
		return model.MenuItem{}, fmt.Errorf("failed to remap cached item: %w", err)
	}
	for field, value := range patch {
		asMap[field] = value
	}
	return itemFromPatch(asMap)
}

func itemFromPatch(fields map[string]any) (model.MenuItem, error) {
	raw, err := json.Marshal(fields)
	if err != nil {
		return model.MenuItem{}, fmt.Errorf("failed to marshal item patch: %w", err)
	}
	var item model.MenuItem
	if err := json.Unmarshal(raw, &item); err != nil {
		return model.MenuItem{}, fmt.Errorf("failed to decode item patch: %w", err)
	}
	return item, nil
}

// PatchFromItem converts a full item into a patch map, used when an upsert
// response should be echoed into the cache.
func PatchFromItem(item model.MenuItem) (map[string]any, error) {
	raw, err := json.Marshal(item)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal item: %w", err)
	}
	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("failed to remap item: %w", err)
	}
	return fields, nil
}
