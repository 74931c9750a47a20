package utils

import (
	"github.com/google/uuid"
)

// UniqueUUIDs loại bỏ id trùng, giữ nguyên thứ tự xuất hiện đầu tiên
func UniqueUUIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// UniqueStrings giống UniqueUUIDs cho string, bỏ qua chuỗi rỗng
func UniqueStrings(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// MergeKeys tính tập key mới: (current - remove) + add
//   - giữ thứ tự, không trùng
//   - removed chỉ gồm key thật sự có trong current
func MergeKeys(current, remove, add []string) (merged []string, removed []string) {
	drop := make(map[string]struct{}, len(remove))
	for _, k := range remove {
		drop[k] = struct{}{}
	}

	kept := make([]string, 0, len(current)+len(add))
	for _, k := range current {
		if _, ok := drop[k]; ok {
			removed = append(removed, k)
			continue
		}
		kept = append(kept, k)
	}

	merged = UniqueStrings(append(kept, add...))
	return merged, UniqueStrings(removed)
}
