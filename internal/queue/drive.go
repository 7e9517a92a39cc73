package queue

import "regexp"

// driveIDPattern matches the 33-character file identifier in Drive share
// links, either path style (/file/d/<id>) or query style (id=<id>).
var driveIDPattern = regexp.MustCompile(`(?:/file/d/|id=)([a-zA-Z0-9_-]{33})`)

// ExtractDriveIDs pulls Drive file identifiers out of free text, dropping
// duplicates and preserving first-seen order.
func ExtractDriveIDs(text string) []string {
	matches := driveIDPattern.FindAllStringSubmatch(text, -1)

	seen := make(map[string]struct{}, len(matches))
	var ids []string
	for _, m := range matches {
		id := m[1]
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids
}

// driveDisplayName builds the placeholder label shown until the service
// returns the real file name.
func driveDisplayName(id string) string {
	suffix := id
	if len(suffix) > 6 {
		suffix = suffix[len(suffix)-6:]
	}
	return "Drive-" + suffix
}
